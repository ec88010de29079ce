// internal/gateway/gateway.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
)

// TokenSource は保存済みの認証トークンを返します。
// 未ログイン時は model.ErrNotFound か model.ErrUnauthenticated を返してください。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Redirector は未認証時にログイン導線へ誘導します
type Redirector interface {
	RedirectToLogin(ctx context.Context)
}

// RedirectFunc は関数を Redirector として使うためのアダプタ
type RedirectFunc func(ctx context.Context)

func (f RedirectFunc) RedirectToLogin(ctx context.Context) {
	f(ctx)
}

// Response はステータスを解釈しない生のレスポンス
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success は 2xx かどうか
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON はボディを v にデコードします
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("gateway.Response.DecodeJSON: %w", err)
	}
	return nil
}

// TransportError はレスポンスを得られなかったことを表します
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == model.ErrTransport
}

// Gateway は保存済みトークンを付与してAPIを呼び出します。
// リトライやタイムアウトは行いません (呼び出し側のコンテキストに従う)。
type Gateway struct {
	client     *http.Client
	tokens     TokenSource
	redirector Redirector
	scheme     string
	baseURL    string
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// WithAuthScheme は Authorization ヘッダーのスキーム (既定 "Token")
func WithAuthScheme(scheme string) Option {
	return func(g *Gateway) { g.scheme = scheme }
}

// WithBaseURL を指定すると "/" で始まるパスに前置します
func WithBaseURL(baseURL string) Option {
	return func(g *Gateway) { g.baseURL = strings.TrimRight(baseURL, "/") }
}

func New(tokens TokenSource, redirector Redirector, opts ...Option) *Gateway {
	g := &Gateway{
		client:     http.DefaultClient,
		tokens:     tokens,
		redirector: redirector,
		scheme:     "Token",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Send は認証付きでリクエストを1回だけ送ります。
// トークンが無い場合はネットワークに出ずに model.ErrUnauthenticated を返し、ログインへ誘導します。
func (g *Gateway) Send(ctx context.Context, method, url string, body any) (*Response, error) {
	logger := middleware.GetLogger(ctx)

	token, err := g.tokens.Token(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrUnauthenticated) {
		return nil, fmt.Errorf("gateway.Send: read credential: %w", err)
	}
	if token == "" {
		logger.Warn("No stored credential, redirecting to login", "method", method, "url", url)
		if g.redirector != nil {
			g.redirector.RedirectToLogin(ctx)
		}
		return nil, model.ErrUnauthenticated
	}

	return g.do(ctx, method, url, body, token)
}

// SendPublic は認証ヘッダー無しで送ります (ログインAPI用)
func (g *Gateway) SendPublic(ctx context.Context, method, url string, body any) (*Response, error) {
	return g.do(ctx, method, url, body, "")
}

func (g *Gateway) do(ctx context.Context, method, url string, body any, token string) (*Response, error) {
	fullURL := g.resolve(url)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway.Send: encode body: %w", errors.Join(model.ErrInvalidInput, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway.Send: build request: %w", errors.Join(model.ErrInvalidInput, err))
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", g.scheme+" "+token)
	}
	if hasJSONBody(method) {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func (g *Gateway) resolve(url string) string {
	if g.baseURL != "" && strings.HasPrefix(url, "/") {
		return g.baseURL + url
	}
	return url
}

func hasJSONBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
