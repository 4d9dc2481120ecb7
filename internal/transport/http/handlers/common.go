package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"modboard/internal/domain/enums"
	"modboard/internal/services/review"
	"modboard/internal/services/scroll"
	httperrors "modboard/internal/transport/http/errors"
)

// Store is the state-store surface the handlers consume.
type Store interface {
	Snapshot() review.Snapshot
	SwitchTab(enums.Queue)
	SelectItem(string) bool
	CloseDetail()
	MarkReviewed(context.Context, string) error
	DeleteItem(context.Context, string) error
}

// ScrollObserver receives scroll positions from the presentation layer.
type ScrollObserver interface {
	Observe(scroll.Position)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(target); err != nil {
		httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
			Code:    "BAD_REQUEST",
			Message: "invalid json body",
		})
		return false
	}
	return true
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func writeAccepted(w http.ResponseWriter) {
	httperrors.Write(w, http.StatusAccepted, map[string]bool{"accepted": true})
}
