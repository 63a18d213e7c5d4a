package native

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
	"github.com/jmylchreest/screenbadge/internal/display"
	"github.com/jmylchreest/screenbadge/internal/theme"
)

// Backend opens badge windows with GTK4.
type Backend struct {
	logger *slog.Logger
}

// NewBackend creates a GTK4 backend. The GTK thread is started lazily by
// the first Open.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Open implements badge.Backend. The window is built on the GTK thread;
// Open blocks until it has been presented or has failed.
func (b *Backend) Open(sessionID string, cfg config.BadgeConfig) (badge.Window, error) {
	exited, err := gtkLoop.ensure(b.logger)
	if err != nil {
		return nil, err
	}

	type result struct {
		window *window
		err    error
	}
	res := make(chan result, 1)

	glib.IdleAdd(func() {
		w, err := newWindow(sessionID, cfg, b.logger.With("session", sessionID))
		res <- result{window: w, err: err}
	})

	select {
	case r := <-res:
		if r.err != nil {
			return nil, r.err
		}
		return r.window, nil
	case <-exited:
		return nil, ErrLoopExited
	}
}

// window is a badge window. win, provider, display and destroyed are only
// touched on the GTK thread.
type window struct {
	win       *gtk.Window
	provider  *gtk.CSSProvider
	display   *gdk.Display
	destroyed bool

	closeOnce  sync.Once
	finishOnce sync.Once
	mu         sync.Mutex
	err        error
	done       chan struct{}
}

// newWindow builds and presents the badge window. Must run on the GTK thread.
func newWindow(sessionID string, cfg config.BadgeConfig, logger *slog.Logger) (*window, error) {
	gdkDisplay := gdk.DisplayGetDefault()
	if gdkDisplay == nil {
		return nil, display.ErrNoDisplay
	}

	class := theme.SessionClass(sessionID)
	css, err := theme.Render(class, cfg)
	if err != nil {
		return nil, &display.DisplayError{Message: "cannot style badge", Cause: err}
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		gdkDisplay,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)

	w := &window{
		provider: provider,
		display:  gdkDisplay,
		done:     make(chan struct{}),
	}

	w.win = gtk.NewWindow()
	w.win.SetTitle(fmt.Sprintf("%s %s", cfg.Namespace, sessionID))
	w.win.SetDecorated(false)
	w.win.SetResizable(false)
	w.win.AddCSSClass(class)

	// The frame fills the window and carries the border
	frame := gtk.NewBox(gtk.OrientationVertical, 0)
	frame.AddCSSClass(theme.FrameClass)
	frame.SetHExpand(true)
	frame.SetVExpand(true)
	frame.SetCanTarget(false)
	w.win.SetChild(frame)

	placement := display.PlacementFor(cfg)
	if !placeWindow(w.win, gdkDisplay, placement, cfg.Namespace, logger) {
		logger.Warn("layer-shell not supported, badge position and stacking are up to the window manager")
	}

	w.win.ConnectDestroy(func() {
		w.destroyed = true
		gtk.StyleContextRemoveProviderForDisplay(w.display, w.provider)
		gtkLoop.untrack(w)
		logger.Debug("badge window destroyed")
		w.finish(nil)
	})
	gtkLoop.track(w)

	w.win.Present()
	logger.Debug("badge window presented", "geometry", placement.String())
	return w, nil
}

// Close schedules destruction of the window on the GTK thread.
func (w *window) Close() {
	w.closeOnce.Do(func() {
		glib.IdleAdd(func() {
			if w.destroyed {
				return
			}
			w.win.Destroy()
		})
	})
}

func (w *window) Done() <-chan struct{} {
	return w.done
}

// Err reports ErrLoopExited if the GTK loop stopped under the window.
// Rendering problems go to GTK's own log handler instead.
func (w *window) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// finish records err and closes done. Only the first call has any effect.
func (w *window) finish(err error) {
	w.finishOnce.Do(func() {
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
		close(w.done)
	})
}
