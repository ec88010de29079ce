// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type AuthHandler struct {
	accounts AccountStore
	issue    TokenIssuer
}

func NewAuthHandler(accounts AccountStore, issue TokenIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, issue: issue}
}

// Login はユーザー名かメールアドレスとパスワードを検証し、トークンを返します。
// 失敗時も {"success": false, "message": ...} の形で返します。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		logger.Warn("Invalid login request", "error", err)
		msg := "リクエストボディの形式が正しくありません。"
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Detail.Message
		}
		webutil.RespondWithJSON(w, http.StatusBadRequest, model.LoginResponse{Success: false, Message: msg})
		return
	}

	username, profile, err := h.accounts.Authenticate(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) || errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed", "login", req.UsernameOrEmail)
			webutil.RespondWithJSON(w, http.StatusUnauthorized, model.LoginResponse{
				Success: false,
				Message: "ユーザー名またはパスワードが正しくありません。",
			})
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	token, err := h.issue(username)
	if err != nil {
		logger.Error("Failed to issue token", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Login successful", "user", username)
	webutil.RespondWithJSON(w, http.StatusOK, model.LoginResponse{
		Success:   true,
		Token:     token,
		User:      profile.Name,
		Email:     profile.Email,
		IsPremium: profile.IsPremium,
	})
}
