// internal/handlers/set_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"lembris_client/internal/middleware"
	"lembris_client/internal/model"
	"lembris_client/internal/webutil"
)

type SetHandler struct {
	store SetStore
}

func NewSetHandler(store SetStore) *SetHandler {
	return &SetHandler{store: store}
}

// GetSets はログインユーザーのセット一覧を返します
func (h *SetHandler) GetSets(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetSets"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	sets, err := h.store.ListSets(r.Context(), owner)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if sets == nil {
		sets = []model.StudySet{}
	}
	logger.Info("Sets listed successfully", slog.Int("count", len(sets)))
	webutil.RespondWithJSON(w, http.StatusOK, sets)
}

func (h *SetHandler) PostSet(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostSet"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.PostSetRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	set, err := h.store.CreateSet(r.Context(), owner, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Set created successfully", slog.String("set_id", set.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, set)
}

func (h *SetHandler) PatchSet(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PatchSet"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	var req model.PatchSetRequest
	if !decodeRequest(w, r, logger, &req) {
		return
	}

	set, err := h.store.PatchSet(r.Context(), owner, idParam(r, "set_id"), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, set)
}

func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteSet"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	if err := h.store.DeleteSet(r.Context(), owner, idParam(r, "set_id")); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondNoContent(w)
}

// GetStudyItems はセットの中で今復習すべきカードを返します
func (h *SetHandler) GetStudyItems(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStudyItems"))
	owner, ok := requireOwner(w, r, logger)
	if !ok {
		return
	}

	items, err := h.store.StudyItems(r.Context(), owner, idParam(r, "set_id"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []model.StudyItem{}
	}
	logger.Info("Study items listed", slog.Int("count", len(items)))
	webutil.RespondWithJSON(w, http.StatusOK, items)
}
