package flywheel

import (
	"sync"
	"time"
)

// TickEvent is posted to the ticker's queue at the configured frame
// interval.
type TickEvent struct {
	Time time.Time
}

// Ticker is the auxiliary timer actor: a separately-spawned goroutine
// that posts tick events at a configured interval using non-blocking
// send, silently dropping on queue-full so duplicate ticks never
// accumulate. Pairs a time.Ticker with a done channel guarded by
// sync.Once so Stop is safe to call more than once.
type Ticker struct {
	interval time.Duration
	queue    chan TickEvent
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once
}

// NewTicker creates a ticker posting at interval onto a queue of the
// given capacity. The ticker does not start until Run is called.
func NewTicker(interval time.Duration, queueCap int) *Ticker {
	return &Ticker{
		interval: interval,
		queue:    make(chan TickEvent, queueCap),
		done:     make(chan struct{}),
	}
}

// Ticks returns the channel the main thread selects on alongside the
// input queue.
func (t *Ticker) Ticks() <-chan TickEvent { return t.queue }

// Run starts the underlying time.Ticker and posts TickEvent values until
// Stop is called. Intended to
// run on its own goroutine.
func (t *Ticker) Run() {
	t.ticker = time.NewTicker(t.interval)
	defer t.ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case now := <-t.ticker.C:
			select {
			case t.queue <- TickEvent{Time: now}:
			default:
				// tick coalescing: drop rather than accumulate
			}
		}
	}
}

// Stop halts the ticker; idempotent.
func (t *Ticker) Stop() {
	t.once.Do(func() {
		close(t.done)
	})
}
