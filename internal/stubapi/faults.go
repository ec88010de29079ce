// internal/stubapi/faults.go
package stubapi

import (
	"net/http"
	"sync"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type fault struct {
	method string
	path   string
	status int
}

// faultInjector は登録された次のリクエストを指定ステータスで失敗させます
type faultInjector struct {
	mu      sync.Mutex
	pending []fault
}

func (f *faultInjector) add(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fault{method: method, path: path, status: status})
}

// take は一致する障害を1件取り出します。method が空なら全メソッドに一致。
func (f *faultInjector) take(method, path string) (fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ft := range f.pending {
		if ft.path == path && (ft.method == "" || ft.method == method) {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return ft, true
		}
	}
	return fault{}, false
}

func (f *faultInjector) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ft, ok := f.take(r.Method, r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		middleware.GetLogger(r.Context()).Warn("Injected fault", "method", r.Method, "path", r.URL.Path, "status", ft.status)
		webutil.RespondWithJSON(w, ft.status, model.APIErrorResponse{
			Error: model.ErrorDetail{Code: "INJECTED_FAULT", Message: http.StatusText(ft.status)},
		})
	})
}
