// internal/repository/db.go
package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lembris_client/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB はクライアントのローカルストレージ (SQLite) を開きます。
// path が ":memory:" または "file:" で始まる場合はそのままDSNとして使います。
func NewDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(200*time.Millisecond),
	)
	finalGormLogger := slogGormLogger.LogMode(gormLogLevel)

	if !isMemoryDSN(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			appLogger.Error("Failed to create storage directory", slog.String("path", path), slog.Any("error", err))
			return nil, fmt.Errorf("repository.NewDB: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: finalGormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to open local storage with GORM", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewDB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, fmt.Errorf("repository.NewDB: %w", err)
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging local storage", slog.Any("error", err))
		sqlDB.Close()
		return nil, fmt.Errorf("repository.NewDB: %w", err)
	}

	// SQLite は書き込みが直列なので接続は1本で足りる
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		appLogger.Error("Failed to migrate local storage", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	appLogger.Debug("Local storage opened", slog.String("path", path))
	return db, nil
}

// Migrate はローカルストレージのテーブルを作成・更新します
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.StorageEntry{}); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	return nil
}

func isMemoryDSN(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file:")
}
