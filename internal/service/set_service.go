// internal/service/set_service.go
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type SetService interface {
	ListSets(ctx context.Context, filter model.SetFilter) ([]model.StudySet, error)
	CreateSetWithCard(ctx context.Context, req *model.CreateSetRequest) (*model.StudySet, *model.Flashcard, error)
	ToggleFavorite(ctx context.Context, id model.ID, current bool) (bool, error)
	DeleteSet(ctx context.Context, id model.ID) error
}

type setService struct {
	api   APIClient
	cards CardService
	now   func() time.Time
}

func NewSetService(api APIClient, cards CardService) SetService {
	return &setService{api: api, cards: cards, now: time.Now}
}

// ListSets はセット一覧を取得し、フィルタで絞り込みます
func (s *setService) ListSets(ctx context.Context, filter model.SetFilter) ([]model.StudySet, error) {
	resp, err := s.api.Send(ctx, http.MethodGet, pathSets, nil)
	if err != nil {
		return nil, fmt.Errorf("setService.ListSets: %w", err)
	}
	var sets []model.StudySet
	if err := decodeResponse(resp, &sets); err != nil {
		return nil, fmt.Errorf("setService.ListSets: %w", err)
	}

	now := s.now()
	filtered := make([]model.StudySet, 0, len(sets))
	for _, set := range sets {
		if filter.Match(set, now) {
			filtered = append(filtered, set)
		}
	}

	middleware.GetLogger(ctx).Debug("Sets retrieved", "filter", filter, "total", len(sets), "matched", len(filtered))
	return filtered, nil
}

// CreateSetWithCard はセットを作り、続けて最初のカードを登録します。
// カードの登録に失敗した場合もセットは残るので、エラーにはセットIDを含めます。
func (s *setService) CreateSetWithCard(ctx context.Context, req *model.CreateSetRequest) (*model.StudySet, *model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.ValidateStruct(req); err != nil {
		return nil, nil, err
	}

	resp, err := s.api.Send(ctx, http.MethodPost, pathSets, model.PostSetRequest{Name: req.Name, Favorite: false})
	if err != nil {
		return nil, nil, fmt.Errorf("setService.CreateSetWithCard: %w", err)
	}
	var set model.StudySet
	if err := decodeResponse(resp, &set); err != nil {
		logger.Warn("Failed to create set", "status", resp.StatusCode, "error", err)
		return nil, nil, fmt.Errorf("setService.CreateSetWithCard: %w", err)
	}

	card, err := s.cards.AddCard(ctx, &model.CreateFlashcardRequest{
		SetID:    set.ID,
		Question: req.Question,
		Answer:   req.Answer,
		Level:    0,
	})
	if err != nil {
		logger.Warn("Set created but first card failed", "set_id", set.ID, "error", err)
		return &set, nil, fmt.Errorf("setService.CreateSetWithCard: set %s created but first card failed: %w", set.ID, err)
	}

	logger.Info("Set created", "set_id", set.ID, "card_id", card.ID)
	return &set, card, nil
}

// ToggleFavorite はお気に入りを反転し、新しい状態を返します
func (s *setService) ToggleFavorite(ctx context.Context, id model.ID, current bool) (bool, error) {
	next := !current
	resp, err := s.api.Send(ctx, http.MethodPatch, resourcePath(pathSets, id), model.PatchSetRequest{Favorite: &next})
	if err != nil {
		return current, fmt.Errorf("setService.ToggleFavorite: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return current, fmt.Errorf("setService.ToggleFavorite: %w", err)
	}
	middleware.GetLogger(ctx).Info("Favorite toggled", "set_id", id, "favorite", next)
	return next, nil
}

func (s *setService) DeleteSet(ctx context.Context, id model.ID) error {
	return deleteResource(ctx, s.api, pathSets, id, "setService.DeleteSet")
}
