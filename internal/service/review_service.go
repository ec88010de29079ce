// internal/service/review_service.go
package service

import (
	"context"
	"fmt"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

// ReviewService は復習セッション用のAPI呼び出しです (session.ReviewAPI を満たす)
type ReviewService interface {
	FetchStudyItems(ctx context.Context, setID model.ID) ([]model.StudyItem, error)
	SubmitGrade(ctx context.Context, itemID model.ID, grade model.Grade) error
	DeleteCard(ctx context.Context, cardID model.ID) error
}

type reviewService struct {
	api APIClient
}

func NewReviewService(api APIClient) ReviewService {
	return &reviewService{api: api}
}

// FetchStudyItems はセットの復習対象カードをサーバーの順序のまま返します
func (s *reviewService) FetchStudyItems(ctx context.Context, setID model.ID) ([]model.StudyItem, error) {
	logger := middleware.GetLogger(ctx).With("set_id", setID)

	resp, err := s.api.Send(ctx, http.MethodGet, studyItemsPath(setID), nil)
	if err != nil {
		return nil, fmt.Errorf("reviewService.FetchStudyItems: %w", err)
	}

	var items []model.StudyItem
	if err := decodeResponse(resp, &items); err != nil {
		logger.Warn("Failed to fetch study items", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("reviewService.FetchStudyItems: %w", err)
	}
	if items == nil {
		items = []model.StudyItem{}
	}

	logger.Info("Successfully retrieved study items", "count", len(items))
	return items, nil
}

// SubmitGrade は評価を記録します
func (s *reviewService) SubmitGrade(ctx context.Context, itemID model.ID, grade model.Grade) error {
	logger := middleware.GetLogger(ctx).With("card_id", itemID, "grade", grade.String())

	req := model.SubmitReviewRequest{Grade: grade.WireValue()}
	if err := webutil.ValidateStruct(&req); err != nil {
		return fmt.Errorf("reviewService.SubmitGrade: %w", err)
	}

	resp, err := s.api.Send(ctx, http.MethodPost, gradePath(itemID), req)
	if err != nil {
		return fmt.Errorf("reviewService.SubmitGrade: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		logger.Warn("Grade rejected", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("reviewService.SubmitGrade: %w", err)
	}

	logger.Info("Grade recorded")
	return nil
}

// DeleteCard はカードを削除します (204 のみ成功)
func (s *reviewService) DeleteCard(ctx context.Context, cardID model.ID) error {
	return deleteResource(ctx, s.api, pathFlashcards, cardID, "reviewService.DeleteCard")
}

// deleteResource は DELETE を送り、204 以外は *model.APIError にします
func deleteResource(ctx context.Context, api APIClient, collection string, id model.ID, op string) error {
	resp, err := api.Send(ctx, http.MethodDelete, resourcePath(collection, id), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkStatus(resp, http.StatusNoContent); err != nil {
		middleware.GetLogger(ctx).Warn("Delete rejected", "op", op, "id", id, "status", resp.StatusCode)
		return fmt.Errorf("%s: %w", op, err)
	}
	middleware.GetLogger(ctx).Info("Resource deleted", "op", op, "id", id)
	return nil
}
