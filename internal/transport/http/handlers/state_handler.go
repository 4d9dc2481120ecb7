package handlers

import (
	"net/http"

	"modboard/internal/transport/http/dto"
	httperrors "modboard/internal/transport/http/errors"
)

type StateHandler struct {
	store Store
}

func NewStateHandler(store Store) *StateHandler {
	return &StateHandler{store: store}
}

// Get returns the full render input for the dashboard.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.FromSnapshot(h.store.Snapshot()))
}
