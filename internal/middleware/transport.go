// internal/middleware/transport.go
package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader はクライアントが付与するリクエストIDのヘッダー名。
// chi の RequestID ミドルウェアも同じヘッダーを読む。
const RequestIDHeader = "X-Request-Id"

// LoggingTransport は送信するHTTPリクエストを記録する http.RoundTripper です。
// コンテキストにロガーがあればそちらを優先します。
type LoggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggingTransport{base: base, logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	logger := t.logger
	if _, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok || logger == nil {
		logger = GetLogger(ctx)
	}

	reqID := req.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		// RoundTripper は元のリクエストを書き換えてはいけない
		req = req.Clone(ctx)
		req.Header.Set(RequestIDHeader, reqID)
	}
	reqLogger := logger.With("req_id", reqID)

	startTime := time.Now()
	reqLogger.Info("Outgoing request started",
		"method", req.Method,
		"url", req.URL.String(),
	)
	if reqLogger.Enabled(ctx, slog.LevelDebug) {
		reqLogger.Debug("Outgoing request detail",
			"headers", formatHeaders(req.Header),
			"body", peekRequestBody(req),
		)
	}

	resp, err := t.base.RoundTrip(req)
	latency := time.Since(startTime)
	if err != nil {
		reqLogger.Error("Outgoing request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"latency_ms", float64(latency.Nanoseconds())/1e6,
			"error", err,
		)
		return nil, err
	}

	reqLogger.Log(ctx, levelForStatus(resp.StatusCode), "Outgoing request completed",
		"status", resp.StatusCode,
		"latency_ms", float64(latency.Nanoseconds())/1e6,
		"bytes_in", resp.ContentLength,
	)
	if reqLogger.Enabled(ctx, slog.LevelDebug) {
		var body []byte
		if resp.Body != nil {
			var readErr error
			body, readErr = io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				reqLogger.Error("Failed to read outgoing response body",
					"status", resp.StatusCode,
					"error", readErr,
				)
				return nil, readErr
			}
			resp.Body = io.NopCloser(bytes.NewReader(body))
		}
		reqLogger.Debug("Outgoing response detail",
			"status", resp.StatusCode,
			"headers", formatHeaders(resp.Header),
			"body", string(body),
		)
	}
	return resp, nil
}

// peekRequestBody は GetBody があればボディのコピーを読みます。
func peekRequestBody(req *http.Request) string {
	if req.Body == nil || req.GetBody == nil {
		return ""
	}
	rc, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	return string(b)
}
