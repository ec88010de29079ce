// internal/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lembris_client/internal/model"
	"lembris_client/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

type userCtxKey struct{}

// TokenAuthMiddleware は "Authorization: <scheme> <jwt>" を検証するミドルウェアです。
// scheme は大文字小文字を区別せず、Bearer も受け付けます。
func TokenAuthMiddleware(secret []byte, scheme string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Token auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			headerParts := strings.Fields(authHeader)
			if len(headerParts) != 2 || !acceptedScheme(headerParts[0], scheme) {
				logger.Warn("Token auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims := &model.JWTCustomClaims{}
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("Token auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			username, err := claims.GetSubject()
			if err != nil || username == "" {
				logger.Warn("Token auth failed: Subject (sub) claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey{}, username)
			ctx = WithLogger(ctx, logger.With("user", username))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func acceptedScheme(got, want string) bool {
	return strings.EqualFold(got, want) || strings.EqualFold(got, "bearer")
}

// GetUsernameFromContext は認証済みユーザー名をコンテキストから取り出します
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(userCtxKey{}).(string)
	if !ok || username == "" {
		return "", model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return username, nil
}

// IssueToken は username を subject とする HS256 トークンを発行します
func IssueToken(secret []byte, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.JWTCustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("middleware.IssueToken: %w", err)
	}
	return signed, nil
}
