package native

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/screenbadge/internal/display"
)

// ErrLoopExited is reported by every window still open when the GTK main
// loop stops.
var ErrLoopExited = &display.DisplayError{Message: "gtk main loop exited"}

// mainLoop owns the GTK thread. GTK can only be initialized once per
// process, so there is a single loop shared by every backend.
type mainLoop struct {
	mu      sync.Mutex
	running bool
	exited  chan struct{} // closed when the current loop stops
	windows map[*window]struct{}
}

var gtkLoop mainLoop

// ensure starts the GTK thread if it is not running yet and returns a
// channel closed when that loop stops. A failed initialization is not
// remembered, so a later call tries again.
func (l *mainLoop) ensure(logger *slog.Logger) (<-chan struct{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return l.exited, nil
	}

	ready := make(chan error, 1)
	go l.run(ready, logger)
	if err := <-ready; err != nil {
		return nil, err
	}
	l.running = true
	l.exited = make(chan struct{})
	logger.Debug("gtk main loop started")
	return l.exited, nil
}

func (l *mainLoop) run(ready chan<- error, logger *slog.Logger) {
	// The thread stays locked for the life of the loop. If initialization
	// fails the goroutine exits while locked and the thread is discarded.
	runtime.LockOSThread()

	if !gtk.InitCheck() {
		ready <- display.ErrNoDisplay
		return
	}

	loop := glib.NewMainLoop(nil, false)
	ready <- nil
	loop.Run()

	logger.Warn("gtk main loop exited")
	l.exit()
}

// track registers a window that is open on the loop.
func (l *mainLoop) track(w *window) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.windows == nil {
		l.windows = make(map[*window]struct{})
	}
	l.windows[w] = struct{}{}
}

// untrack forgets a window that has been destroyed.
func (l *mainLoop) untrack(w *window) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, w)
}

// exit marks the loop stopped and fails every window still open, so their
// sessions terminate instead of waiting on a loop that will never run again.
func (l *mainLoop) exit() {
	l.mu.Lock()
	orphaned := l.windows
	l.windows = nil
	l.running = false
	if l.exited != nil {
		close(l.exited)
		l.exited = nil
	}
	l.mu.Unlock()

	for w := range orphaned {
		w.finish(ErrLoopExited)
	}
}
