// internal/service/note_service.go
package service

import (
	"context"
	"fmt"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type NoteService interface {
	ListNotes(ctx context.Context) ([]model.Note, error)
	GetNote(ctx context.Context, id model.ID) (*model.Note, error)
	SaveNote(ctx context.Context, id model.ID, req *model.SaveNoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, id model.ID) error
}

type noteService struct {
	api APIClient
}

func NewNoteService(api APIClient) NoteService {
	return &noteService{api: api}
}

func (s *noteService) ListNotes(ctx context.Context) ([]model.Note, error) {
	resp, err := s.api.Send(ctx, http.MethodGet, pathNotes, nil)
	if err != nil {
		return nil, fmt.Errorf("noteService.ListNotes: %w", err)
	}
	var notes []model.Note
	if err := decodeResponse(resp, &notes); err != nil {
		return nil, fmt.Errorf("noteService.ListNotes: %w", err)
	}
	middleware.GetLogger(ctx).Debug("Notes retrieved", "count", len(notes))
	return notes, nil
}

func (s *noteService) GetNote(ctx context.Context, id model.ID) (*model.Note, error) {
	resp, err := s.api.Send(ctx, http.MethodGet, resourcePath(pathNotes, id), nil)
	if err != nil {
		return nil, fmt.Errorf("noteService.GetNote: %w", err)
	}
	var note model.Note
	if err := decodeResponse(resp, &note); err != nil {
		return nil, fmt.Errorf("noteService.GetNote: %w", err)
	}
	return &note, nil
}

// SaveNote は id があれば PUT で更新、無ければ POST で作成します
func (s *noteService) SaveNote(ctx context.Context, id model.ID, req *model.SaveNoteRequest) (*model.Note, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.ValidateStruct(req); err != nil {
		return nil, err
	}

	method, path := http.MethodPost, pathNotes
	if !id.IsZero() {
		method, path = http.MethodPut, resourcePath(pathNotes, id)
	}

	resp, err := s.api.Send(ctx, method, path, req)
	if err != nil {
		return nil, fmt.Errorf("noteService.SaveNote: %w", err)
	}
	var note model.Note
	if err := decodeResponse(resp, &note); err != nil {
		logger.Warn("Failed to save note", "method", method, "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("noteService.SaveNote: %w", err)
	}

	logger.Info("Note saved", "method", method, "note_id", note.ID)
	return &note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, id model.ID) error {
	return deleteResource(ctx, s.api, pathNotes, id, "noteService.DeleteNote")
}
