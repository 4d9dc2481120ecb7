package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"modboard/internal/domain/model"
	"modboard/internal/transport/http/dto"
	httperrors "modboard/internal/transport/http/errors"
)

// AuditLog is the audit-trail read surface exposed to moderators.
type AuditLog interface {
	ListRecent(ctx context.Context, limit int) ([]model.AuditRecord, error)
	ActionCounts(ctx context.Context) (map[string]int64, error)
}

// AuditHandler serves the recent-actions trail. The trail is optional
// infrastructure; without it the endpoint reports itself disabled.
type AuditHandler struct {
	log AuditLog
}

func NewAuditHandler(log AuditLog) *AuditHandler {
	return &AuditHandler{log: log}
}

func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.log == nil {
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
			Code:    "AUDIT_DISABLED",
			Message: "audit trail is not configured",
		})
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeBadRequest(w, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.log.ListRecent(r.Context(), limit)
	if err != nil {
		writeInternal(w, "AUDIT_READ_FAILED", "failed to read audit trail")
		return
	}
	counts, err := h.log.ActionCounts(r.Context())
	if err != nil {
		writeInternal(w, "AUDIT_READ_FAILED", "failed to read audit counters")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.FromAuditRecords(records, counts))
}
