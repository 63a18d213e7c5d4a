package badge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/screenbadge/internal/config"
)

// State is the lifecycle state of a display session.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateClosing
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Session is one run of the badge window.
type Session struct {
	ID string

	cfg     config.BadgeConfig
	backend Backend
	logger  *slog.Logger

	state atomic.Int32
	err   error // written by run before done is closed

	closeOnce sync.Once
	closeCh   chan struct{}
	done      chan struct{}
}

func newSession(cfg config.BadgeConfig, backend Backend, logger *slog.Logger) *Session {
	s := &Session{
		ID:      ulid.Make().String(),
		cfg:     cfg,
		backend: backend,
		logger:  logger,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.state.Store(int32(StateCreated))
	s.logger = logger.With("session", s.ID)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Done is closed when the session has terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the failure that ended the session, if any.
// Only meaningful after Done is closed.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// requestClose raises the close signal. Safe to call repeatedly.
func (s *Session) requestClose() {
	s.closeOnce.Do(func() { close(s.closeCh) })
}

// wait blocks until the session terminates or ctx is done.
func (s *Session) wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run drives the session from Created to Terminated. onExit is always
// called, after the state reaches Terminated and before done is closed.
func (s *Session) run(onExit func(*Session)) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.err = fmt.Errorf("badge session panicked: %v", r)
		}
		if s.err != nil {
			s.logger.Error("badge session failed", "error", s.err)
		}
		s.state.Store(int32(StateTerminated))
		onExit(s)
		s.logger.Debug("badge session terminated", "lifetime", lifetime(started, time.Now()))
		close(s.done)
	}()

	window, err := s.backend.Open(s.ID, s.cfg)
	if err != nil {
		s.err = fmt.Errorf("failed to create badge: %w", err)
		return
	}
	s.state.Store(int32(StateRunning))
	s.logger.Debug("badge session running")

	select {
	case <-s.closeCh:
		s.state.Store(int32(StateClosing))
		s.logger.Debug("badge session closing")
		window.Close()
		<-window.Done()
	case <-window.Done():
		s.logger.Debug("badge window closed externally")
	}

	s.err = window.Err()
}

// lifetime formats how long a session ran, e.g. "3 seconds".
func lifetime(started, ended time.Time) string {
	return strings.TrimSpace(humanize.RelTime(started, ended, "", ""))
}
