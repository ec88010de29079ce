// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

// AuthService はログイン状態を管理します
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.UserProfile, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.UserProfile, error)
	IsPremium(ctx context.Context) (bool, error)
	ActivatePremium(ctx context.Context) error
}

type authService struct {
	api   APIClient
	store *CredentialStore
}

func NewAuthService(api APIClient, store *CredentialStore) AuthService {
	return &authService{api: api, store: store}
}

// Login は認証情報を送り、成功したらトークンとユーザー情報を保存します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.UserProfile, error) {
	logger := middleware.GetLogger(ctx).With("user", req.UsernameOrEmail)

	if err := webutil.ValidateStruct(req); err != nil {
		return nil, err
	}

	resp, err := s.api.SendPublic(ctx, http.MethodPost, pathLogin, req)
	if err != nil {
		logger.Error("Login request failed", "error", err)
		return nil, fmt.Errorf("authService.Login: %w", err)
	}

	var body model.LoginResponse
	decodeErr := resp.DecodeJSON(&body)

	if !resp.Success() || decodeErr != nil || !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		apiErr := &model.APIError{
			StatusCode: resp.StatusCode,
			Code:       "LOGIN_FAILED",
			Message:    msg,
			Body:       resp.Body,
		}
		logger.Warn("Login rejected", "status", resp.StatusCode, "message", msg)
		return nil, fmt.Errorf("authService.Login: %w", apiErr)
	}

	if body.Token == "" {
		logger.Error("Login succeeded without a token")
		return nil, model.NewAppError("INVALID_RESPONSE", "ログイン応答にトークンが含まれていません。", "", model.ErrInternalServer)
	}

	profile := model.UserProfile{
		Name:      body.User,
		Email:     body.Email,
		IsPremium: body.IsPremium,
	}
	if err := s.store.SaveLogin(ctx, body.Token, profile); err != nil {
		return nil, model.NewAppError("STORAGE_ERROR", "ログイン情報を保存できませんでした。", "", err)
	}

	logger.Info("Logged in", "premium", profile.IsPremium)
	return &profile, nil
}

// Logout はトークンとユーザー情報を削除します
func (s *authService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return model.NewAppError("STORAGE_ERROR", "ログアウトに失敗しました。", "", err)
	}
	middleware.GetLogger(ctx).Info("Logged out")
	return nil
}

// CurrentUser はログイン中のユーザーを返します。未ログインなら model.ErrUnauthenticated。
func (s *authService) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	if _, err := s.store.Token(ctx); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authService.CurrentUser: %w", err)
	}
	profile, err := s.store.Profile(ctx)
	if errors.Is(err, model.ErrNotFound) {
		// トークンだけ残っている場合は名前無しで返す
		return &model.UserProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authService.CurrentUser: %w", err)
	}
	return profile, nil
}

// IsPremium はローカルで有効化済みか、サーバーがプレミアムと返したユーザーなら true
func (s *authService) IsPremium(ctx context.Context) (bool, error) {
	flag, err := s.store.PremiumFlag(ctx)
	if err != nil {
		return false, fmt.Errorf("authService.IsPremium: %w", err)
	}
	if flag {
		return true, nil
	}
	profile, err := s.store.Profile(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("authService.IsPremium: %w", err)
	}
	return profile.IsPremium, nil
}

// ActivatePremium はローカルのプレミアムフラグを立てます
func (s *authService) ActivatePremium(ctx context.Context) error {
	if err := s.store.SetPremiumFlag(ctx, true); err != nil {
		return model.NewAppError("STORAGE_ERROR", "プレミアムを有効化できませんでした。", "", err)
	}
	middleware.GetLogger(ctx).Info("Premium activated locally")
	return nil
}
