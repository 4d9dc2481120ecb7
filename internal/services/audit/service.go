package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"modboard/internal/domain/enums"
	"modboard/internal/domain/model"
)

type Repo interface {
	Save(context.Context, model.AuditRecord) error
	ListRecent(context.Context, int) ([]model.AuditRecord, error)
	CountLast24h(context.Context, string) (int64, error)
}

// Service records moderator actions for after-the-fact review. Every call is
// best-effort: a nil repo turns the service into a no-op.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) LogSessionStart(ctx context.Context, actorID string) error {
	return s.log(ctx, enums.AuditActionSessionStart, actorID, "")
}

func (s *Service) LogMarkReviewed(ctx context.Context, actorID string, itemID string) error {
	return s.log(ctx, enums.AuditActionMarkReviewed, actorID, itemID)
}

func (s *Service) LogDeleteItem(ctx context.Context, actorID string, itemID string) error {
	return s.log(ctx, enums.AuditActionDeleteItem, actorID, itemID)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]model.AuditRecord, error) {
	if s.repo == nil {
		return []model.AuditRecord{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

// ActionCounts reads the 24h rolling counter for every audit action.
func (s *Service) ActionCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	if s == nil || s.repo == nil {
		return counts, nil
	}
	for _, action := range []enums.AuditAction{
		enums.AuditActionSessionStart,
		enums.AuditActionMarkReviewed,
		enums.AuditActionDeleteItem,
	} {
		value, err := s.repo.CountLast24h(ctx, string(action))
		if err != nil {
			return nil, err
		}
		counts[string(action)] = value
	}
	return counts, nil
}

func (s *Service) log(ctx context.Context, action enums.AuditAction, actorID string, itemID string) error {
	if s == nil || s.repo == nil {
		return nil
	}

	record := model.AuditRecord{
		ID:        uuid.NewString(),
		ActorID:   strings.TrimSpace(actorID),
		Action:    action,
		ItemID:    strings.TrimSpace(itemID),
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Save(ctx, record)
}
