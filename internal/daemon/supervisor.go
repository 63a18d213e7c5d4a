package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
)

// Supervisor owns the badge controller of a long-running process.
// A controller's configuration is fixed, so applying a new configuration
// replaces the controller.
type Supervisor struct {
	mu         sync.Mutex
	backend    badge.Backend
	logger     *slog.Logger
	controller *badge.Controller
}

// NewSupervisor creates a supervisor whose first controller uses cfg.
func NewSupervisor(cfg config.BadgeConfig, backend badge.Backend, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		backend:    backend,
		logger:     logger,
		controller: badge.NewController(cfg, backend, logger),
	}
}

// Controller returns the current controller.
func (s *Supervisor) Controller() *badge.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// Start shows the badge.
func (s *Supervisor) Start() {
	s.Controller().Start()
}

// Stop closes the badge and waits until it is gone or ctx is done.
func (s *Supervisor) Stop(ctx context.Context) error {
	return s.Controller().StopAndWait(ctx)
}

// Apply replaces the controller with one using cfg. If the old badge was
// showing, it is closed first and the new badge is started.
func (s *Supervisor) Apply(ctx context.Context, cfg config.BadgeConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.controller
	wasActive := old.Active()
	if err := old.StopAndWait(ctx); err != nil {
		return fmt.Errorf("failed to close previous badge: %w", err)
	}

	s.controller = badge.NewController(cfg, s.backend, s.logger)
	if wasActive {
		s.controller.Start()
	}

	s.logger.Info("badge configuration applied", "restarted", wasActive)
	return nil
}
