package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lembris_client/internal/gateway"
	"lembris_client/internal/model"
	"lembris_client/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_noteService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := loggedIn(t)
	notes := NewNoteService(env.gw)

	created, err := notes.SaveNote(ctx, "", &model.SaveNoteRequest{Title: "Aula 1", Content: "conteúdo"})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	updated, err := notes.SaveNote(ctx, created.ID, &model.SaveNoteRequest{Title: "Aula 1", Content: "revisado"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "revisado", updated.Content)

	list, err := notes.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := notes.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "revisado", got.Content)

	require.NoError(t, notes.DeleteNote(ctx, created.ID))
	list, err = notes.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func Test_noteService_SaveNote_Method(t *testing.T) {
	ctx := context.Background()
	req := &model.SaveNoteRequest{Title: "t", Content: "c"}
	body := []byte(`{"id": 5, "titulo": "t", "conteudo": "c"}`)

	tests := []struct {
		name       string
		id         model.ID
		wantMethod string
		wantPath   string
	}{
		{"新規は POST", "", http.MethodPost, "/anotacoes/"},
		{"既存は PUT", "5", http.MethodPut, "/anotacoes/5/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewAPIClient(t)
			api.On("Send", ctx, tt.wantMethod, tt.wantPath, req).
				Return(&gateway.Response{StatusCode: http.StatusOK, Body: body}, nil).Once()

			note, err := NewNoteService(api).SaveNote(ctx, tt.id, req)
			require.NoError(t, err)
			assert.Equal(t, model.ID("5"), note.ID)
		})
	}
}

func Test_noteService_SaveNote_Validation(t *testing.T) {
	api := mocks.NewAPIClient(t)
	_, err := NewNoteService(api).SaveNote(context.Background(), "", &model.SaveNoteRequest{Title: "only title"})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	api.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
