package badge

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/screenbadge/internal/config"
)

// Controller starts and stops a badge. The zero value is not usable;
// create one with NewController.
type Controller struct {
	cfg     config.BadgeConfig
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	session *Session // nil when no session is active
	lastErr error    // failure of the most recently terminated session
}

// NewController creates a controller for cfg. The configuration is copied
// and never changes for the lifetime of the controller.
func NewController(cfg config.BadgeConfig, backend Backend, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:     cfg,
		backend: backend,
		logger:  logger,
	}
}

// Config returns the controller's configuration.
func (c *Controller) Config() config.BadgeConfig {
	return c.cfg
}

// Active reports whether a session is active.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// Session returns the active session, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Err returns the failure that ended the most recent session, or nil if it
// ended cleanly or no session has ended yet.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Start shows the badge on a background session and returns immediately.
// It does nothing if a session is already active.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.logger.Debug("badge already active, ignoring start", "session", c.session.ID)
		return
	}

	s := newSession(c.cfg, c.backend, c.logger)
	c.session = s
	go s.run(c.release)

	c.logger.Info("badge started",
		"session", s.ID,
		"color", c.cfg.Color,
		"thickness", c.cfg.Thickness,
		"width", c.cfg.Width,
		"height", c.cfg.Height,
	)
}

// Stop asks the active session to close and returns without waiting.
// It does nothing if no session is active.
func (c *Controller) Stop() {
	if s := c.stop(); s == nil {
		c.logger.Debug("no active badge, ignoring stop")
	}
}

// StopAndWait asks the active session to close and blocks until it has
// terminated or ctx is done.
func (c *Controller) StopAndWait(ctx context.Context) error {
	s := c.stop()
	if s == nil {
		return nil
	}
	return s.wait(ctx)
}

// Run starts the badge, calls fn, and stops the badge on every exit path
// of fn, including panics. It waits up to the configured close timeout for
// the window to go away. The error returned is fn's error.
func (c *Controller) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	c.Start()
	defer func() {
		waitCtx := context.WithoutCancel(ctx)
		if timeout := c.cfg.CloseTimeout.Duration(); timeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(waitCtx, timeout)
			defer cancel()
		}
		if err := c.StopAndWait(waitCtx); err != nil {
			c.logger.Warn("badge did not close in time", "timeout", c.cfg.CloseTimeout.Duration(), "error", err)
		}
	}()
	return fn(ctx)
}

func (c *Controller) stop() *Session {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()

	if s == nil {
		return nil
	}
	s.requestClose()
	c.logger.Info("badge stop requested", "session", s.ID)
	return s
}

// release clears the session handle once the session has terminated.
func (c *Controller) release(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == s {
		c.session = nil
		c.lastErr = s.err
	}
}

// WaitInactive blocks until the current session, if any, has terminated
// or ctx is done. It pairs with the fire-and-forget Stop.
func (c *Controller) WaitInactive(ctx context.Context) error {
	if s := c.Session(); s != nil {
		return s.wait(ctx)
	}
	return nil
}
