// internal/handlers/card_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type CardHandler struct {
	store CardStore
}

func NewCardHandler(store CardStore) *CardHandler {
	return &CardHandler{store: store}
}

func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostCard"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.CreateFlashcardRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	card, err := h.store.CreateCard(r.Context(), owner, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Card created successfully", slog.String("card_id", card.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card)
}

func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetCard"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	card, err := h.store.GetCard(r.Context(), owner, idParam(r, "card_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card)
}

func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PatchCard"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.PatchFlashcardRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	card, err := h.store.PatchCard(r.Context(), owner, idParam(r, "card_id"), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, card)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteCard"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	if err := h.store.DeleteCard(r.Context(), owner, idParam(r, "card_id")); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

// PostGrade は復習の評価を記録します
func (h *CardHandler) PostGrade(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostGrade"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitReviewRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}
	grade, err := model.ParseGrade(req.Grade)
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "評価の値が正しくありません。", "avaliacao", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	cardID := idParam(r, "card_id")
	if err := h.store.RecordGrade(r.Context(), owner, cardID, grade); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Grade recorded", slog.String("card_id", cardID.String()), slog.String("grade", grade.String()))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
