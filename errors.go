package flywheel

import "errors"

// Error taxonomy. These are returned by value, never panicked:
// out-of-bounds cell access is clamped or rejected by the buffer/renderer
// methods themselves rather than surfacing here.
var (
	// ErrNotRunning is returned by the renderer's Apply* operations once a
	// write error has made the renderer fatal, and by Engine.Run when it
	// exits for that reason. Engine methods called after Stop do not
	// return it.
	ErrNotRunning = errors.New("flywheel: engine not running")

	// ErrInvalidUTF8 is returned when text crossing the foreign-function
	// boundary is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("flywheel: invalid utf-8")

	// ErrOutOfBounds is returned by APIs that reject rather than clamp
	// out-of-range coordinates.
	ErrOutOfBounds = errors.New("flywheel: out of bounds")

	// ErrQueueFull names a bounded queue rejecting a non-blocking send.
	// Nothing in this package returns or stores it — errors never drive
	// inter-actor control flow; dropped input events are counted by
	// InputActor.DroppedCount instead.
	ErrQueueFull = errors.New("flywheel: queue full")
)
