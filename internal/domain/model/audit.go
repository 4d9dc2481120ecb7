package model

import (
	"encoding/json"
	"time"

	"modboard/internal/domain/enums"
)

type AuditRecord struct {
	ID        string            `json:"id"`
	ActorID   string            `json:"actor_id"`
	Action    enums.AuditAction `json:"action"`
	ItemID    string            `json:"item_id,omitempty"`
	Payload   json.RawMessage   `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
