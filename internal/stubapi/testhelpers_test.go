package stubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lembris_client/internal/config"
	"lembris_client/internal/model"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Stub: config.StubConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(testConfig(), NewStore(), logger)
	require.NoError(t, srv.Store().AddAccount("alice", "alice@example.com", "secret-pw", false))
	require.NoError(t, srv.Store().AddAccount("bob", "bob@example.com", "bob-pw", true))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func login(t *testing.T, ts *httptest.Server, user, password string) string {
	t.Helper()
	resp := doJSON(t, ts, "", http.MethodPost, "/login_usuario/", model.LoginRequest{UsernameOrEmail: user, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body model.LoginResponse
	decode(t, resp, &body)
	require.True(t, body.Success)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// doJSON は APIPrefix 配下の path にリクエストを送ります
func doJSON(t *testing.T, ts *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+APIPrefix+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
