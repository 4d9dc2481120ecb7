package scroll

import (
	"sync"
	"time"
)

const (
	DefaultThresholdPx = 200
	DefaultDebounce    = 300 * time.Millisecond
)

// Position is one viewport scroll observation reported by the presentation
// layer. Units are pixels.
type Position struct {
	Offset         float64
	ViewportHeight float64
	DocumentHeight float64
}

// NearBottom reports whether the viewport bottom is within threshold pixels
// of the document bottom.
func (p Position) NearBottom(threshold float64) bool {
	return p.DocumentHeight-(p.Offset+p.ViewportHeight) <= threshold
}

// Trigger coalesces scroll observations with a trailing debounce window and
// invokes the fetch callback when the last observation of a burst rests near
// the document bottom. Gating on the loading flag and the queue cursor is
// the callback's responsibility.
type Trigger struct {
	fetch     func()
	threshold float64
	delay     time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	last     Position
	detached bool
}

func NewTrigger(thresholdPx int, delay time.Duration, fetch func()) *Trigger {
	threshold := float64(thresholdPx)
	if threshold <= 0 {
		threshold = DefaultThresholdPx
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Trigger{
		fetch:     fetch,
		threshold: threshold,
		delay:     delay,
	}
}

// Observe records a scroll position and (re)starts the debounce window.
// Only the final observation of a burst is evaluated.
func (t *Trigger) Observe(pos Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.detached {
		return
	}

	t.last = pos
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.delay, t.fire)
}

func (t *Trigger) fire() {
	t.mu.Lock()
	if t.detached {
		t.mu.Unlock()
		return
	}
	pos := t.last
	t.timer = nil
	t.mu.Unlock()

	if pos.NearBottom(t.threshold) && t.fetch != nil {
		t.fetch()
	}
}

// Detach cancels any pending debounced invocation and makes further
// observations no-ops. Safe to call more than once.
func (t *Trigger) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detached = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
