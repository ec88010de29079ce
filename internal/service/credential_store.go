// internal/service/credential_store.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lembris_client/internal/config"
	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/repository"

	"gorm.io/gorm"
)

// CredentialStore はログイン情報をローカルストレージに保存します。
// gateway.TokenSource を満たします。
type CredentialStore struct {
	db   *gorm.DB
	repo repository.StorageRepository
}

func NewCredentialStore(db *gorm.DB, repo repository.StorageRepository) *CredentialStore {
	return &CredentialStore{db: db, repo: repo}
}

// Token は保存済みトークンを返します。未ログインなら model.ErrNotFound。
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, s.db, config.StorageKeyToken)
	if err != nil {
		return "", err
	}
	return token, nil
}

// SaveLogin はトークンとユーザー情報をまとめて保存し、ローカルのプレミアムフラグを消します
func (s *CredentialStore) SaveLogin(ctx context.Context, token string, profile model.UserProfile) error {
	logger := middleware.GetLogger(ctx)
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("CredentialStore.SaveLogin: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Set(ctx, tx, config.StorageKeyToken, token); err != nil {
			logger.Error("Failed to store token", "error", err)
			return err
		}
		if err := s.repo.Set(ctx, tx, config.StorageKeyUser, string(payload)); err != nil {
			logger.Error("Failed to store user profile", "error", err)
			return err
		}
		return s.repo.Delete(ctx, tx, config.StorageKeyPremium)
	})
}

// Clear はトークンとユーザー情報を一緒に消します
func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.db, config.StorageKeyToken, config.StorageKeyUser)
}

// Profile は保存済みユーザー情報を返します。未ログインなら model.ErrNotFound。
func (s *CredentialStore) Profile(ctx context.Context) (*model.UserProfile, error) {
	raw, err := s.repo.Get(ctx, s.db, config.StorageKeyUser)
	if err != nil {
		return nil, err
	}
	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		middleware.GetLogger(ctx).Warn("Stored user profile is corrupted", "error", err)
		return nil, fmt.Errorf("CredentialStore.Profile: %w", err)
	}
	return &profile, nil
}

// PremiumFlag はローカルで有効化したプレミアムのフラグ ("true" のみ真)
func (s *CredentialStore) PremiumFlag(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, s.db, config.StorageKeyPremium)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *CredentialStore) SetPremiumFlag(ctx context.Context, on bool) error {
	if !on {
		return s.repo.Delete(ctx, s.db, config.StorageKeyPremium)
	}
	return s.repo.Set(ctx, s.db, config.StorageKeyPremium, "true")
}
