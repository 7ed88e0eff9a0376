package flywheel

import (
	"errors"
	"sync/atomic"
)

// KeyCode identifies a key: either a Unicode scalar value (for printable
// keys) or one of the named special-key constants below.
type KeyCode rune

const (
	KeyEnter KeyCode = -(iota + 1)
	KeyEscape
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask over a key event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// MouseButton identifies which button produced a MouseClick.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// InputEvent is the typed union the input source produces. Only
// one of the embedded fields is meaningful per Kind.
type InputEvent struct {
	Kind InputKind

	Key      KeyCode
	KeyMods  Modifiers
	MouseX   int
	MouseY   int
	Button   MouseButton
	ScrollDX int
	ScrollDY int
	Width    int
	Height   int
	Paste    string
}

// InputKind tags which fields of an InputEvent are populated.
type InputKind uint8

const (
	EventKey InputKind = iota
	EventMouseClick
	EventMouseScroll
	EventResize
	EventPaste
	EventShutdown
)

// EventSource is the raw terminal event source, an external collaborator
// referenced only by interface: a real implementation reads raw bytes
// from the terminal and decodes escape sequences into InputEvent values;
// Flywheel defines only the contract its InputActor drains.
type EventSource interface {
	// Next blocks until an event is available, the source reaches
	// end-of-stream (second return false), or an error occurs. Next must
	// return promptly after Close is called from another goroutine.
	Next() (InputEvent, bool, error)

	// Close unblocks a pending Next call and releases source resources.
	// Close is idempotent.
	Close() error
}

// ErrSourceClosed is returned by EventSource implementations (and may be
// observed by InputActor) once the source has been closed.
var ErrSourceClosed = errors.New("flywheel: event source closed")

// InputActor drains an EventSource on a dedicated goroutine and forwards
// typed events onto a bounded, drop-on-full queue. It never
// blocks a producer: queue-full drops the event and increments a counter.
type InputActor struct {
	source EventSource
	queue  chan InputEvent
	stop   *atomic.Bool
	dropped atomic.Int64
	done    chan struct{}
}

// NewInputActor creates an actor reading from source, posting onto a
// queue of the given capacity, observing the shared stop flag.
func NewInputActor(source EventSource, queueCap int, stop *atomic.Bool) *InputActor {
	return &InputActor{
		source: source,
		queue:  make(chan InputEvent, queueCap),
		stop:   stop,
		done:   make(chan struct{}),
	}
}

// Events returns the channel the main thread selects on for input events.
func (a *InputActor) Events() <-chan InputEvent { return a.queue }

// DroppedCount returns the number of events dropped due to queue-full.
func (a *InputActor) DroppedCount() int64 { return a.dropped.Load() }

// Done is closed once the actor's Run loop has returned.
func (a *InputActor) Done() <-chan struct{} { return a.done }

// Run blocks on the event source, translating and forwarding events until
// the stop flag is set or the source reaches end-of-stream. Run is meant
// to be launched on its own goroutine; Stop (called elsewhere) closes
// the source to unblock it promptly rather than relying solely on the
// stop flag being polled between events.
func (a *InputActor) Run() {
	defer close(a.done)
	for {
		if a.stop.Load() {
			return
		}
		ev, ok, err := a.source.Next()
		if err != nil || !ok {
			return
		}
		if a.stop.Load() {
			return
		}
		select {
		case a.queue <- ev:
		default:
			a.dropped.Add(1)
		}
		if ev.Kind == EventShutdown {
			return
		}
	}
}

// Stop unblocks the actor's pending read and causes Run to return; safe
// to call multiple times.
func (a *InputActor) Stop() {
	a.source.Close()
}
