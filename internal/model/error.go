// internal/model/error.go
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")

	// クライアント側のエラー分類
	ErrUnauthenticated = errors.New("unauthenticated: no stored credential")
	ErrTransport       = errors.New("transport error")
	ErrAPI             = errors.New("api error")
	ErrPrecondition    = errors.New("precondition violation")
	ErrBusy            = errors.New("operation already in progress")
)

// ErrorDetail はエラーレスポンスの中身です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はユーザー向けメッセージと原因エラーを保持します
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIError はリモートAPIが 2xx 以外を返したことを表します。
// errors.Is(err, ErrAPI) で判定できます。
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

// NewAPIError はステータスコードとレスポンスボディから APIError を組み立てます。
// ボディが構造化JSONであればメッセージを取り出します。
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: body}
	apiErr.Code, apiErr.Message = parseErrorBody(body)
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// parseErrorBody は以下の形式に対応します:
//
//	{"error": {"code": "...", "message": "..."}}
//	{"message": "..."} / {"detail": "..."}
//	{"field": ["msg", ...], ...}
func parseErrorBody(body []byte) (code, message string) {
	if len(body) == 0 {
		return "", ""
	}

	var envelope APIErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Code, envelope.Error.Message
	}

	var generic map[string]any
	if err := json.Unmarshal(body, &generic); err != nil {
		return "", strings.TrimSpace(string(body))
	}
	for _, key := range []string{"message", "detail"} {
		if s, ok := generic[key].(string); ok && s != "" {
			return "", s
		}
	}

	var parts []string
	for field, v := range generic {
		switch msgs := v.(type) {
		case []any:
			for _, m := range msgs {
				parts = append(parts, fmt.Sprintf("%s: %v", field, m))
			}
		case string:
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs))
		}
	}
	if len(parts) > 0 {
		// map の順序は不定なので並びを固定する
		sort.Strings(parts)
		return "VALIDATION_ERROR", strings.Join(parts, "; ")
	}
	return "", ""
}
