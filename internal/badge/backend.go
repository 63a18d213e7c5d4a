package badge

import (
	"github.com/jmylchreest/screenbadge/internal/config"
)

// Backend opens native badge windows.
type Backend interface {
	// Open creates and shows a badge window for cfg. sessionID is unique per
	// session and may be used to scope native resources.
	// Open blocks until the window is visible or has failed to open.
	Open(sessionID string, cfg config.BadgeConfig) (Window, error)
}

// Window is an open badge window.
type Window interface {
	// Close requests destruction of the window. It is safe to call from any
	// goroutine and more than once; it does not wait for the window to go away.
	Close()

	// Done is closed once the native window has been destroyed, whether
	// by Close or by the user or compositor.
	Done() <-chan struct{}

	// Err reports an event loop failure after Done is closed.
	Err() error
}
