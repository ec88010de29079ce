// internal/service/api.go
package service

import (
	"context"
	"fmt"
	"net/url"

	"lembris_client/internal/gateway"
	"lembris_client/internal/model"
)

// APIClient はサービスが使うHTTP送信の口です (gateway.Gateway が実装)
type APIClient interface {
	Send(ctx context.Context, method, url string, body any) (*gateway.Response, error)
	SendPublic(ctx context.Context, method, url string, body any) (*gateway.Response, error)
}

// APIのパス
const (
	pathLogin       = "/login_usuario/"
	pathSets        = "/conjuntos/"
	pathFlashcards  = "/flashcards/"
	pathNotes       = "/anotacoes/"
	pathStudyItemsF = "/conjuntos/%s/cards_para_estudar/"
	pathGradeF      = "/flashcards/%s/avaliar/"
)

func resourcePath(collection string, id model.ID) string {
	return collection + url.PathEscape(id.String()) + "/"
}

func studyItemsPath(setID model.ID) string {
	return fmt.Sprintf(pathStudyItemsF, url.PathEscape(setID.String()))
}

func gradePath(cardID model.ID) string {
	return fmt.Sprintf(pathGradeF, url.PathEscape(cardID.String()))
}

// checkStatus はステータスを解釈し、想定外なら *model.APIError を返します。
// accepted を省略した場合は 2xx を成功とみなします。
func checkStatus(resp *gateway.Response, accepted ...int) error {
	if len(accepted) == 0 {
		if resp.Success() {
			return nil
		}
		return model.NewAPIError(resp.StatusCode, resp.Body)
	}
	for _, code := range accepted {
		if resp.StatusCode == code {
			return nil
		}
	}
	return model.NewAPIError(resp.StatusCode, resp.Body)
}

// decodeResponse はステータスを確認してからボディをデコードします
func decodeResponse(resp *gateway.Response, dst any) error {
	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := resp.DecodeJSON(dst); err != nil {
		return model.NewAppError("INVALID_RESPONSE", "サーバーの応答を解釈できませんでした。", "", err)
	}
	return nil
}
