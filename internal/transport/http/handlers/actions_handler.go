package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ActionsHandler submits moderation actions. Adapter failures are logged and
// swallowed here: the moderator gets an accepted response either way and the
// next state read reflects whatever actually happened.
type ActionsHandler struct {
	store  Store
	logger *zap.Logger
}

func NewActionsHandler(store Store, logger *zap.Logger) *ActionsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionsHandler{store: store, logger: logger}
}

func (h *ActionsHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimSpace(chi.URLParam(r, "id"))
	if itemID == "" {
		writeBadRequest(w, "INVALID_ITEM_ID", "item id is required")
		return
	}
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}

	if err := h.store.MarkReviewed(r.Context(), itemID); err != nil {
		h.logger.Error("mark reviewed action failed", zap.String("item_id", itemID), zap.Error(err))
	}
	writeAccepted(w)
}

func (h *ActionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimSpace(chi.URLParam(r, "id"))
	if itemID == "" {
		writeBadRequest(w, "INVALID_ITEM_ID", "item id is required")
		return
	}
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}

	if err := h.store.DeleteItem(r.Context(), itemID); err != nil {
		h.logger.Error("delete action failed", zap.String("item_id", itemID), zap.Error(err))
	}
	writeAccepted(w)
}
