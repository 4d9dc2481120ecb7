package dto

import (
	"time"

	"modboard/internal/domain/model"
)

type AuditRecordResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	ItemID    string    `json:"item_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditTrailResponse struct {
	Records      []AuditRecordResponse `json:"records"`
	ActionCounts map[string]int64      `json:"action_counts_24h"`
}

func FromAuditRecords(records []model.AuditRecord, counts map[string]int64) AuditTrailResponse {
	out := make([]AuditRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, AuditRecordResponse{
			ID:        record.ID,
			ActorID:   record.ActorID,
			Action:    string(record.Action),
			ItemID:    record.ItemID,
			CreatedAt: record.CreatedAt,
		})
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	return AuditTrailResponse{Records: out, ActionCounts: counts}
}
