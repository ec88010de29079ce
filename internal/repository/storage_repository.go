// internal/repository/storage_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRepository はクライアントの永続キー/値ストレージへのアクセスを提供します
type StorageRepository interface {
	Get(ctx context.Context, db *gorm.DB, key string) (string, error)
	Set(ctx context.Context, db *gorm.DB, key, value string) error
	Delete(ctx context.Context, db *gorm.DB, keys ...string) error
}

type gormStorageRepository struct{}

func NewGormStorageRepository() StorageRepository {
	return &gormStorageRepository{}
}

// Get はキーの値を返します。存在しない場合は model.ErrNotFound。
func (r *gormStorageRepository) Get(ctx context.Context, db *gorm.DB, key string) (string, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.StorageEntry
	if err := db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		logger.Error("Failed to read storage entry", "key", key, "error", err)
		return "", fmt.Errorf("gormStorageRepository.Get: %w", err)
	}
	return entry.Value, nil
}

// Set はキーの値を作成または上書きします
func (r *gormStorageRepository) Set(ctx context.Context, db *gorm.DB, key, value string) error {
	logger := middleware.GetLogger(ctx)
	entry := model.StorageEntry{Key: key, Value: value}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		logger.Error("Failed to write storage entry", "key", key, "error", err)
		return fmt.Errorf("gormStorageRepository.Set: %w", err)
	}
	return nil
}

// Delete はキーを削除します。存在しないキーは無視します。
func (r *gormStorageRepository) Delete(ctx context.Context, db *gorm.DB, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("key IN ?", keys).Delete(&model.StorageEntry{})
	if result.Error != nil {
		logger.Error("Failed to delete storage entries", "keys", keys, "error", result.Error)
		return fmt.Errorf("gormStorageRepository.Delete: %w", result.Error)
	}
	return nil
}
