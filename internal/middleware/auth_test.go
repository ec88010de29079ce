// internal/middleware/auth_test.go
package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lembris_client/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret []byte, subject string, exp time.Time) string {
	t.Helper()
	claims := model.JWTCustomClaims{
		Username: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestTokenAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var gotUser string
	handler := TokenAuthMiddleware(secret, "Token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	valid := signTestToken(t, secret, "maria", time.Now().Add(time.Hour))
	expired := signTestToken(t, secret, "maria", time.Now().Add(-time.Hour))
	foreign := signTestToken(t, []byte("other"), "maria", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "Token スキーム", header: "Token " + valid, wantStatus: http.StatusOK, wantUser: "maria"},
		{name: "Bearer も許可", header: "Bearer " + valid, wantStatus: http.StatusOK, wantUser: "maria"},
		{name: "ヘッダーなし", header: "", wantStatus: http.StatusUnauthorized},
		{name: "形式不正", header: "Token", wantStatus: http.StatusUnauthorized},
		{name: "スキーム違い", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "期限切れ", header: "Token " + expired, wantStatus: http.StatusUnauthorized},
		{name: "署名不一致", header: "Token " + foreign, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodGet, "/conjuntos/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUser, gotUser)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"error"`)
			}
		})
	}
}

func TestGetUsernameFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUsernameFromContext(req.Context())
	assert.ErrorIs(t, err, model.ErrInternalServer)
}

func TestIssueToken(t *testing.T) {
	secret := []byte("issue-secret")
	token, err := IssueToken(secret, "joao", time.Hour)
	require.NoError(t, err)

	var gotUser string
	handler := TokenAuthMiddleware(secret, "Token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUsernameFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "token "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "joao", gotUser)
}
