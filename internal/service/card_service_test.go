package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"lembris_client/internal/gateway"
	"lembris_client/internal/model"
	"lembris_client/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func Test_cardService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := loggedIn(t)
	cards := NewCardService(env.gw)
	sets := NewSetService(env.gw, cards)

	set, first, err := sets.CreateSetWithCard(ctx, &model.CreateSetRequest{Name: "s", Question: "q1", Answer: "a1"})
	require.NoError(t, err)

	second, err := cards.AddCard(ctx, &model.CreateFlashcardRequest{SetID: set.ID, Question: "q2", Answer: "a2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	edited, err := cards.EditCard(ctx, second.ID, &model.EditFlashcardRequest{Question: "q2!", Answer: "a2!"})
	require.NoError(t, err)
	assert.Equal(t, "q2!", edited.Question)

	got, err := cards.GetCard(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, got)

	require.NoError(t, cards.DeleteCard(ctx, first.ID))
	_, err = cards.GetCard(ctx, first.ID)
	assert.True(t, errors.Is(err, model.ErrAPI))
}

func Test_cardService_DeleteCard_Status(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"204 は成功", http.StatusNoContent, false},
		{"200 は失敗扱い", http.StatusOK, true},
		{"404", http.StatusNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewAPIClient(t)
			api.On("Send", ctx, http.MethodDelete, "/flashcards/7/", nil).
				Return(&gateway.Response{StatusCode: tt.status}, nil).Once()

			err := NewCardService(api).DeleteCard(ctx, "7")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var apiErr *model.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func Test_cardService_TransportError(t *testing.T) {
	ctx := context.Background()
	api := mocks.NewAPIClient(t)
	transportErr := &gateway.TransportError{Method: http.MethodGet, URL: "/flashcards/1/", Err: errors.New("connection refused")}
	api.On("Send", ctx, http.MethodGet, "/flashcards/1/", nil).Return(nil, transportErr).Once()

	_, err := NewCardService(api).GetCard(ctx, "1")
	assert.True(t, errors.Is(err, model.ErrTransport))
	assert.False(t, errors.Is(err, model.ErrAPI))
}
