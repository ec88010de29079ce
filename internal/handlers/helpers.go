// internal/handlers/helpers.go
package handlers

import (
	"log/slog"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// requireOwner は認証済みユーザー名を取り出します。取れなければレスポンスを書いて false。
func requireOwner(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	owner, err := middleware.GetUsernameFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthenticated)
		webutil.HandleError(w, logger, appErr)
		return "", false
	}
	return owner, true
}

// decodeRequest はボディのデコードと検証を行います。失敗時はレスポンスを書いて false。
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeAndValidate(r, dst); err != nil {
		logger.Warn("Invalid request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}

func idParam(r *http.Request, name string) model.ID {
	return model.ID(chi.URLParam(r, name))
}
