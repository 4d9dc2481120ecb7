package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"modboard/internal/domain/model"
)

const (
	auditListKey       = "audit:actions"
	auditListMaxLength = 1000
	auditCounterPrefix = "cnt:audit:"
	auditCounterTTL    = 24 * time.Hour
)

// AuditRepo keeps a bounded trail of moderator actions: a capped list of
// records plus 24h rolling counters per action.
type AuditRepo struct {
	client *goredis.Client
}

func NewAuditRepo(client *goredis.Client) *AuditRepo {
	return &AuditRepo{client: client}
}

func (r *AuditRepo) Save(ctx context.Context, record model.AuditRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(record.ID) == "" || strings.TrimSpace(string(record.Action)) == "" {
		return fmt.Errorf("audit record id and action are required")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, auditListKey, payload)
	pipe.LTrim(ctx, auditListKey, 0, auditListMaxLength-1)
	counterKey := auditCounterPrefix + strings.ToLower(string(record.Action)) + ":24h"
	pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, auditCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save audit record: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	raw, err := r.client.LRange(ctx, auditListKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	records := make([]model.AuditRecord, 0, len(raw))
	for _, entry := range raw {
		var record model.AuditRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// CountLast24h reads the rolling counter for one action.
func (r *AuditRepo) CountLast24h(ctx context.Context, action string) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	key := auditCounterPrefix + strings.ToLower(strings.TrimSpace(action)) + ":24h"
	value, err := r.client.Get(ctx, key).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read audit counter %s: %w", key, err)
	}
	return value, nil
}
