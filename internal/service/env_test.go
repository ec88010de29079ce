package service

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/gateway"
	"lembris_client/internal/model"
	"lembris_client/internal/repository"
	"lembris_client/internal/stubapi"

	"github.com/stretchr/testify/require"
)

const (
	testUser     = "alice"
	testPassword = "secret-pw"
)

// stubEnv はスタブAPIと実際のゲートウェイ・ローカルストレージを組み合わせたテスト環境
type stubEnv struct {
	srv       *stubapi.Server
	gw        *gateway.Gateway
	creds     *CredentialStore
	auth      AuthService
	redirects atomic.Int32
}

func newStubEnv(t *testing.T) *stubEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Storage: config.StorageConfig{Path: filepath.Join(t.TempDir(), "client.db")},
		Stub:    config.StubConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	config.ApplyDefaults(cfg)

	srv := stubapi.NewServer(cfg, stubapi.NewStore(), logger)
	require.NoError(t, srv.Store().AddAccount(testUser, "alice@example.com", testPassword, false))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	db, err := repository.NewDB(cfg.Storage.Path, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &stubEnv{srv: srv}
	env.creds = NewCredentialStore(db, repository.NewGormStorageRepository())
	env.gw = gateway.New(env.creds,
		gateway.RedirectFunc(func(ctx context.Context) { env.redirects.Add(1) }),
		gateway.WithHTTPClient(ts.Client()),
		gateway.WithBaseURL(ts.URL+stubapi.APIPrefix),
		gateway.WithAuthScheme(cfg.API.AuthScheme),
	)
	env.auth = NewAuthService(env.gw, env.creds)
	return env
}

// loggedIn はログイン済みの環境を返します
func loggedIn(t *testing.T) *stubEnv {
	t.Helper()
	env := newStubEnv(t)
	_, err := env.auth.Login(context.Background(), &model.LoginRequest{UsernameOrEmail: testUser, Password: testPassword})
	require.NoError(t, err)
	return env
}

func stubPath(p string) string {
	return stubapi.APIPrefix + p
}
