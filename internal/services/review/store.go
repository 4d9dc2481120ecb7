package review

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"modboard/internal/domain/enums"
	"modboard/internal/domain/model"
	"modboard/internal/infra/metrics"
)

// Adapter is the moderation backend contract the store delegates to. All
// network behavior, including timeouts, belongs to the adapter.
type Adapter interface {
	Connect(ctx context.Context, moderatorID string, token string) error
	QueryReviewQueue(ctx context.Context, filter model.ReviewFilter, sort []string, page model.PageRequest) (model.ReviewPage, error)
	SubmitAction(ctx context.Context, name enums.ActionName, itemID string, payload *model.ActionPayload) error
}

// URLSigner turns storage keys into display URLs. Optional. A non-positive
// ttl lets the signer pick its configured default.
type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Recorder receives best-effort audit notifications for completed actions.
type Recorder interface {
	LogSessionStart(ctx context.Context, actorID string) error
	LogMarkReviewed(ctx context.Context, actorID string, itemID string) error
	LogDeleteItem(ctx context.Context, actorID string, itemID string) error
}

type queueState struct {
	items     []model.ReviewItem
	cursor    string
	exhausted bool
}

// Store owns the dashboard's dual review queues and the shared loading
// indicator. All state lives behind one mutex and is mutated only through
// the store's operations; items enter only via adapter fetches and change
// only queue membership afterwards.
type Store struct {
	adapter     Adapter
	signer      URLSigner
	recorder    Recorder
	logger      *zap.Logger
	moderatorID string
	token       string
	pageSize    int

	mu        sync.Mutex
	pending   queueState
	reviewed  queueState
	inflight  int
	activeTab enums.Queue
	selected  string
}

type Config struct {
	ModeratorID string
	Token       string
	PageSize    int
}

func NewStore(adapter Adapter, cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Store{
		adapter:     adapter,
		logger:      logger,
		moderatorID: strings.TrimSpace(cfg.ModeratorID),
		token:       strings.TrimSpace(cfg.Token),
		pageSize:    pageSize,
		activeTab:   enums.QueuePendingReview,
	}
}

// AttachSigner enables presigning of payload image keys on fetched items.
func (s *Store) AttachSigner(signer URLSigner) {
	s.signer = signer
}

// AttachRecorder enables best-effort audit records for completed actions.
func (s *Store) AttachRecorder(recorder Recorder) {
	s.recorder = recorder
}

// Initialize authenticates the moderator and issues the first-page fetch for
// both queues concurrently. An authentication failure is returned to the
// caller and is fatal to startup; fetch failures are logged only.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.adapter.Connect(ctx, s.moderatorID, s.token); err != nil {
		return err
	}

	if s.recorder != nil {
		if err := s.recorder.LogSessionStart(ctx, s.moderatorID); err != nil {
			s.logger.Warn("audit session start failed", zap.Error(err))
		}
	}

	var wg sync.WaitGroup
	for _, queue := range []enums.Queue{enums.QueuePendingReview, enums.QueueReviewed} {
		wg.Add(1)
		go func(q enums.Queue) {
			defer wg.Done()
			s.fetch(ctx, q, "")
		}(queue)
	}
	wg.Wait()

	return nil
}

// TryFetchNext requests the next page for the active tab. The in-flight slot
// is reserved under the same lock as the gate check, so two concurrent calls
// can never both fetch the same cursor. The attempt is dropped when a fetch
// is already in flight or the queue has no further pages; dropped attempts
// are not remembered or replayed.
func (s *Store) TryFetchNext(ctx context.Context) bool {
	s.mu.Lock()
	queue := s.activeTab
	state := s.queueFor(queue)
	if s.inflight > 0 || state.exhausted {
		s.mu.Unlock()
		metrics.ScrollFetches.WithLabelValues("dropped").Inc()
		return false
	}
	s.inflight++
	cursor := state.cursor
	s.mu.Unlock()

	metrics.ScrollFetches.WithLabelValues("fired").Inc()
	s.fetchReserved(ctx, queue, cursor)
	return true
}

// fetch reserves an in-flight slot and runs one page query. Used by
// Initialize, which primes both queues unconditionally.
func (s *Store) fetch(ctx context.Context, queue enums.Queue, cursor string) {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.fetchReserved(ctx, queue, cursor)
}

// fetchReserved runs one page query with the in-flight slot already held and
// applies the result. A no-cursor fetch replaces the queue's collection; a
// cursored fetch appends. On failure the queue is left at its
// last-known-good state. The slot is always released.
func (s *Store) fetchReserved(ctx context.Context, queue enums.Queue, cursor string) {
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	filter := model.ReviewFilter{
		EntityType: enums.EntityTypeChatMessage,
		Reviewed:   queue == enums.QueueReviewed,
		HasText:    true,
	}
	page, err := s.adapter.QueryReviewQueue(ctx, filter, nil, model.PageRequest{
		Cursor: cursor,
		Limit:  s.pageSize,
	})
	if err != nil {
		metrics.FetchErrors.WithLabelValues(string(queue)).Inc()
		s.logger.Error("fetch review queue page failed",
			zap.String("queue", string(queue)),
			zap.Error(err),
		)
		return
	}

	items := s.signImages(ctx, page.Items)

	s.mu.Lock()
	state := s.queueFor(queue)
	if cursor == "" {
		state.items = items
	} else {
		state.items = append(state.items, items...)
	}
	state.cursor = page.Next
	state.exhausted = page.Next == ""
	size := len(state.items)
	s.mu.Unlock()

	metrics.PagesFetched.WithLabelValues(string(queue)).Inc()
	metrics.QueueSize.WithLabelValues(string(queue)).Set(float64(size))
}

// MarkReviewed submits the mark-reviewed action and, only on acknowledgment,
// moves the item from the pending queue to the front of the reviewed queue.
// The adapter is called even when the item is no longer held locally.
func (s *Store) MarkReviewed(ctx context.Context, itemID string) error {
	err := s.adapter.SubmitAction(ctx, enums.ActionMarkReviewed, itemID, nil)
	if err != nil {
		metrics.ActionsTotal.WithLabelValues(string(enums.ActionMarkReviewed), "error").Inc()
		s.logger.Error("mark reviewed failed", zap.String("item_id", itemID), zap.Error(err))
		return err
	}
	metrics.ActionsTotal.WithLabelValues(string(enums.ActionMarkReviewed), "ok").Inc()

	s.mu.Lock()
	item, found := removeItem(&s.pending, itemID)
	if found {
		// The backend does not return the updated item; the local
		// representation is reused without server-assigned reviewer
		// metadata.
		s.reviewed.items = append([]model.ReviewItem{item}, s.reviewed.items...)
	}
	pendingSize := len(s.pending.items)
	reviewedSize := len(s.reviewed.items)
	s.mu.Unlock()

	metrics.QueueSize.WithLabelValues(string(enums.QueuePendingReview)).Set(float64(pendingSize))
	metrics.QueueSize.WithLabelValues(string(enums.QueueReviewed)).Set(float64(reviewedSize))

	if s.recorder != nil {
		if auditErr := s.recorder.LogMarkReviewed(ctx, s.moderatorID, itemID); auditErr != nil {
			s.logger.Warn("audit mark reviewed failed", zap.Error(auditErr))
		}
	}
	return nil
}

// DeleteItem submits a soft delete and, on acknowledgment, removes the item
// from the pending queue. Reviewed items are never deleted locally.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	payload := &model.ActionPayload{HardDelete: false}
	err := s.adapter.SubmitAction(ctx, enums.ActionDeleteMessage, itemID, payload)
	if err != nil {
		metrics.ActionsTotal.WithLabelValues(string(enums.ActionDeleteMessage), "error").Inc()
		s.logger.Error("delete item failed", zap.String("item_id", itemID), zap.Error(err))
		return err
	}
	metrics.ActionsTotal.WithLabelValues(string(enums.ActionDeleteMessage), "ok").Inc()

	s.mu.Lock()
	_, _ = removeItem(&s.pending, itemID)
	if s.selected == itemID {
		s.selected = ""
	}
	pendingSize := len(s.pending.items)
	s.mu.Unlock()

	metrics.QueueSize.WithLabelValues(string(enums.QueuePendingReview)).Set(float64(pendingSize))

	if s.recorder != nil {
		if auditErr := s.recorder.LogDeleteItem(ctx, s.moderatorID, itemID); auditErr != nil {
			s.logger.Warn("audit delete failed", zap.Error(auditErr))
		}
	}
	return nil
}

func (s *Store) SwitchTab(queue enums.Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch queue {
	case enums.QueuePendingReview, enums.QueueReviewed:
		s.activeTab = queue
	}
}

// SelectItem opens the detail overlay for an item held in either queue.
// Unknown ids are ignored.
func (s *Store) SelectItem(itemID string) bool {
	itemID = strings.TrimSpace(itemID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if findItem(s.pending.items, itemID) != nil || findItem(s.reviewed.items, itemID) != nil {
		s.selected = itemID
		return true
	}
	return false
}

func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

func (s *Store) ActiveTab() enums.Queue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// QueueView is a render-safe copy of one queue's state.
type QueueView struct {
	Items   []model.ReviewItem
	HasMore bool
}

// Snapshot is the full render input for the presentation layer.
type Snapshot struct {
	Pending   QueueView
	Reviewed  QueueView
	IsLoading bool
	ActiveTab enums.Queue
	Selected  *model.ReviewItem
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Pending:   viewOf(s.pending),
		Reviewed:  viewOf(s.reviewed),
		IsLoading: s.inflight > 0,
		ActiveTab: s.activeTab,
	}
	if s.selected != "" {
		if item := findItem(s.pending.items, s.selected); item != nil {
			cloned := item.Clone()
			snapshot.Selected = &cloned
		} else if item := findItem(s.reviewed.items, s.selected); item != nil {
			cloned := item.Clone()
			snapshot.Selected = &cloned
		}
	}
	return snapshot
}

func (s *Store) signImages(ctx context.Context, items []model.ReviewItem) []model.ReviewItem {
	if s.signer == nil {
		return items
	}
	for i := range items {
		if items[i].Payload == nil {
			continue
		}
		for j, ref := range items[i].Payload.Images {
			trimmed := strings.TrimSpace(ref)
			if trimmed == "" || strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
				continue
			}
			signed, err := s.signer.PresignGet(ctx, trimmed, 0)
			if err != nil {
				s.logger.Warn("presign payload image failed", zap.String("key", trimmed), zap.Error(err))
				continue
			}
			if signed != "" {
				items[i].Payload.Images[j] = signed
			}
		}
	}
	return items
}

func (s *Store) queueFor(queue enums.Queue) *queueState {
	if queue == enums.QueueReviewed {
		return &s.reviewed
	}
	return &s.pending
}

func viewOf(state queueState) QueueView {
	items := make([]model.ReviewItem, 0, len(state.items))
	for _, item := range state.items {
		items = append(items, item.Clone())
	}
	return QueueView{Items: items, HasMore: !state.exhausted}
}

func findItem(items []model.ReviewItem, itemID string) *model.ReviewItem {
	if itemID == "" {
		return nil
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i]
		}
	}
	return nil
}

func removeItem(state *queueState, itemID string) (model.ReviewItem, bool) {
	for i := range state.items {
		if state.items[i].ID == itemID {
			item := state.items[i]
			state.items = append(state.items[:i], state.items[i+1:]...)
			return item, true
		}
	}
	return model.ReviewItem{}, false
}
