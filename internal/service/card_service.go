// internal/service/card_service.go
package service

import (
	"context"
	"fmt"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type CardService interface {
	AddCard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error)
	GetCard(ctx context.Context, id model.ID) (*model.Flashcard, error)
	EditCard(ctx context.Context, id model.ID, req *model.EditFlashcardRequest) (*model.Flashcard, error)
	DeleteCard(ctx context.Context, id model.ID) error
}

type cardService struct {
	api APIClient
}

func NewCardService(api APIClient) CardService {
	return &cardService{api: api}
}

func (s *cardService) AddCard(ctx context.Context, req *model.CreateFlashcardRequest) (*model.Flashcard, error) {
	if err := webutil.ValidateStruct(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Send(ctx, http.MethodPost, pathFlashcards, req)
	if err != nil {
		return nil, fmt.Errorf("cardService.AddCard: %w", err)
	}
	var card model.Flashcard
	if err := decodeResponse(resp, &card); err != nil {
		return nil, fmt.Errorf("cardService.AddCard: %w", err)
	}
	middleware.GetLogger(ctx).Info("Card created", "card_id", card.ID, "set_id", req.SetID)
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, id model.ID) (*model.Flashcard, error) {
	resp, err := s.api.Send(ctx, http.MethodGet, resourcePath(pathFlashcards, id), nil)
	if err != nil {
		return nil, fmt.Errorf("cardService.GetCard: %w", err)
	}
	var card model.Flashcard
	if err := decodeResponse(resp, &card); err != nil {
		return nil, fmt.Errorf("cardService.GetCard: %w", err)
	}
	return &card, nil
}

// EditCard は質問と答えを PATCH で更新します
func (s *cardService) EditCard(ctx context.Context, id model.ID, req *model.EditFlashcardRequest) (*model.Flashcard, error) {
	if err := webutil.ValidateStruct(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Send(ctx, http.MethodPatch, resourcePath(pathFlashcards, id), req)
	if err != nil {
		return nil, fmt.Errorf("cardService.EditCard: %w", err)
	}
	var card model.Flashcard
	if err := decodeResponse(resp, &card); err != nil {
		return nil, fmt.Errorf("cardService.EditCard: %w", err)
	}
	middleware.GetLogger(ctx).Info("Card updated", "card_id", id)
	return &card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id model.ID) error {
	return deleteResource(ctx, s.api, pathFlashcards, id, "cardService.DeleteCard")
}
