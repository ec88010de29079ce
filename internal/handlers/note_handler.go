// internal/handlers/note_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type NoteHandler struct {
	store NoteStore
}

func NewNoteHandler(store NoteStore) *NoteHandler {
	return &NoteHandler{store: store}
}

func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetNotes"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	notes, err := h.store.ListNotes(r.Context(), owner)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetNote"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	note, err := h.store.GetNote(r.Context(), owner, idParam(r, "note_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostNote"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.SaveNoteRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	note, err := h.store.CreateNote(r.Context(), owner, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Note created successfully", slog.String("note_id", note.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) PutNote(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PutNote"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.SaveNoteRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	note, err := h.store.UpdateNote(r.Context(), owner, idParam(r, "note_id"), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteNote"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	if err := h.store.DeleteNote(r.Context(), owner, idParam(r, "note_id")); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}
