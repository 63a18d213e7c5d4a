package display

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
)

// HeadlessBackend opens badge windows that exist only as log lines.
// It lets the controller run where no display server is available.
type HeadlessBackend struct {
	logger *slog.Logger

	mu     sync.Mutex
	opened []Placement
}

// NewHeadlessBackend creates a headless backend.
func NewHeadlessBackend(logger *slog.Logger) *HeadlessBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeadlessBackend{logger: logger}
}

// Open implements badge.Backend.
func (b *HeadlessBackend) Open(sessionID string, cfg config.BadgeConfig) (badge.Window, error) {
	placement := PlacementFor(cfg)

	b.mu.Lock()
	b.opened = append(b.opened, placement)
	b.mu.Unlock()

	b.logger.Info("headless badge shown",
		"session", sessionID,
		"geometry", placement.String(),
		"color", cfg.Color,
		"thickness", cfg.Thickness,
	)

	return &headlessWindow{
		sessionID: sessionID,
		logger:    b.logger,
		done:      make(chan struct{}),
	}, nil
}

// Opened returns the placements of every window opened so far.
func (b *HeadlessBackend) Opened() []Placement {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Placement(nil), b.opened...)
}

type headlessWindow struct {
	sessionID string
	logger    *slog.Logger
	closeOnce sync.Once
	done      chan struct{}
}

func (w *headlessWindow) Close() {
	w.closeOnce.Do(func() {
		w.logger.Info("headless badge closed", "session", w.sessionID)
		close(w.done)
	})
}

func (w *headlessWindow) Done() <-chan struct{} {
	return w.done
}

func (w *headlessWindow) Err() error {
	return nil
}
