package audit

import (
	"context"
	"testing"

	"modboard/internal/domain/enums"
	"modboard/internal/domain/model"
)

type stubRepo struct {
	saved []model.AuditRecord
	err   error
}

func (s *stubRepo) Save(_ context.Context, record model.AuditRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, record)
	return nil
}

func (s *stubRepo) ListRecent(_ context.Context, limit int) ([]model.AuditRecord, error) {
	if limit > len(s.saved) {
		limit = len(s.saved)
	}
	return s.saved[:limit], nil
}

func (s *stubRepo) CountLast24h(_ context.Context, action string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, record := range s.saved {
		if string(record.Action) == action {
			count++
		}
	}
	return count, nil
}

func TestServiceAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	service := NewService(repo)

	if err := service.LogMarkReviewed(context.Background(), "mod-1", "m1"); err != nil {
		t.Fatalf("log mark reviewed: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected one record, got %d", len(repo.saved))
	}
	record := repo.saved[0]
	if record.ID == "" {
		t.Fatal("expected generated id")
	}
	if record.Action != enums.AuditActionMarkReviewed {
		t.Fatalf("unexpected action: %q", record.Action)
	}
	if record.ActorID != "mod-1" || record.ItemID != "m1" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestServiceActionCounts(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	service := NewService(repo)
	ctx := context.Background()

	if err := service.LogMarkReviewed(ctx, "mod-1", "m1"); err != nil {
		t.Fatalf("log mark reviewed: %v", err)
	}
	if err := service.LogMarkReviewed(ctx, "mod-1", "m2"); err != nil {
		t.Fatalf("log mark reviewed: %v", err)
	}
	if err := service.LogDeleteItem(ctx, "mod-1", "m3"); err != nil {
		t.Fatalf("log delete: %v", err)
	}

	counts, err := service.ActionCounts(ctx)
	if err != nil {
		t.Fatalf("action counts: %v", err)
	}
	if counts[string(enums.AuditActionMarkReviewed)] != 2 {
		t.Fatalf("unexpected mark reviewed count: %d", counts[string(enums.AuditActionMarkReviewed)])
	}
	if counts[string(enums.AuditActionDeleteItem)] != 1 {
		t.Fatalf("unexpected delete count: %d", counts[string(enums.AuditActionDeleteItem)])
	}
	if counts[string(enums.AuditActionSessionStart)] != 0 {
		t.Fatalf("unexpected session start count: %d", counts[string(enums.AuditActionSessionStart)])
	}
}

func TestServiceWithoutRepoIsNoop(t *testing.T) {
	t.Parallel()

	service := NewService(nil)

	if err := service.LogSessionStart(context.Background(), "mod-1"); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
	records, err := service.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty list, got %d", len(records))
	}
	counts, err := service.ActionCounts(context.Background())
	if err != nil {
		t.Fatalf("action counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected empty counts, got %v", counts)
	}
}
