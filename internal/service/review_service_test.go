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
	"github.com/stretchr/testify/require"
)

func Test_reviewService_AgainstStub(t *testing.T) {
	ctx := context.Background()
	env := loggedIn(t)
	cards := NewCardService(env.gw)
	sets := NewSetService(env.gw, cards)
	review := NewReviewService(env.gw)

	set, first, err := sets.CreateSetWithCard(ctx, &model.CreateSetRequest{Name: "Capitais", Question: "Peru", Answer: "Lima"})
	require.NoError(t, err)
	second, err := cards.AddCard(ctx, &model.CreateFlashcardRequest{SetID: set.ID, Question: "Chile", Answer: "Santiago"})
	require.NoError(t, err)

	items, err := review.FetchStudyItems(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, "Capitais", items[0].SetName)

	require.NoError(t, review.SubmitGrade(ctx, first.ID, model.GradeGreat))

	items, err = review.FetchStudyItems(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)

	require.NoError(t, review.DeleteCard(ctx, second.ID))
	items, err = review.FetchStudyItems(ctx, set.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func Test_reviewService_SubmitGrade_WireValues(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		grade model.Grade
		wire  string
	}{
		{model.GradePoor, "ruim"},
		{model.GradeOK, "ok"},
		{model.GradeGreat, "perfeito"},
	}

	for _, tt := range tests {
		t.Run(tt.grade.String(), func(t *testing.T) {
			api := mocks.NewAPIClient(t)
			api.On("Send", ctx, http.MethodPost, "/flashcards/9/avaliar/", model.SubmitReviewRequest{Grade: tt.wire}).
				Return(&gateway.Response{StatusCode: http.StatusOK, Body: []byte(`{"status":"ok"}`)}, nil).Once()

			require.NoError(t, NewReviewService(api).SubmitGrade(ctx, "9", tt.grade))
		})
	}
}

func Test_reviewService_SubmitGrade_InvalidGrade(t *testing.T) {
	// 不正な評価はリクエストを送らずに弾く
	api := mocks.NewAPIClient(t)

	err := NewReviewService(api).SubmitGrade(context.Background(), "9", model.Grade(7))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Contains(t, err.Error(), "reviewService.SubmitGrade")

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Detail.Code)
	api.AssertNotCalled(t, "Send")
}

func Test_reviewService_FetchStudyItems_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		resp    *gateway.Response
		wantErr error
	}{
		{
			name:    "サーバーエラーは ErrAPI",
			resp:    &gateway.Response{StatusCode: http.StatusInternalServerError, Body: []byte(`{"detail":"boom"}`)},
			wantErr: model.ErrAPI,
		},
		{
			name:    "壊れたJSON",
			resp:    &gateway.Response{StatusCode: http.StatusOK, Body: []byte(`[{`)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewAPIClient(t)
			api.On("Send", ctx, http.MethodGet, "/conjuntos/3/cards_para_estudar/", nil).Return(tt.resp, nil).Once()

			items, err := NewReviewService(api).FetchStudyItems(ctx, "3")
			require.Error(t, err)
			assert.Nil(t, items)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				var apiErr *model.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "boom", apiErr.Message)
			} else {
				var appErr *model.AppError
				assert.True(t, errors.As(err, &appErr))
			}
		})
	}
}
