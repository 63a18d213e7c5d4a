package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
	"github.com/jmylchreest/screenbadge/internal/display"
)

func waitRunning(t *testing.T, c *badge.Controller) {
	t.Helper()
	require.Eventually(t, func() bool {
		s := c.Session()
		return s != nil && s.State() == badge.StateRunning
	}, waitFor, tick)
}

func TestSupervisor_ApplyRestartsActiveBadge(t *testing.T) {
	backend := display.NewHeadlessBackend(testLogger())
	s := NewSupervisor(config.Default(), backend, testLogger())

	s.Start()
	first := s.Controller()
	waitRunning(t, first)

	cfg := config.Default()
	cfg.Color = "red"
	cfg.Width = 120
	require.NoError(t, s.Apply(context.Background(), cfg))

	assert.False(t, first.Active())
	second := s.Controller()
	assert.NotSame(t, first, second)
	assert.Equal(t, "red", second.Config().Color)
	waitRunning(t, second)

	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, second.Active())

	opened := backend.Opened()
	require.Len(t, opened, 2)
	assert.Equal(t, "200x200+0+0", opened[0].String())
	assert.Equal(t, "120x200+0+0", opened[1].String())
}

func TestSupervisor_ApplyKeepsInactiveBadgeInactive(t *testing.T) {
	backend := display.NewHeadlessBackend(testLogger())
	s := NewSupervisor(config.Default(), backend, testLogger())

	cfg := config.Default()
	cfg.Color = "blue"
	require.NoError(t, s.Apply(context.Background(), cfg))

	assert.False(t, s.Controller().Active())
	assert.Equal(t, "blue", s.Controller().Config().Color)
	assert.Empty(t, backend.Opened())
}

func TestSupervisor_ApplyRejectsInvalidConfig(t *testing.T) {
	s := NewSupervisor(config.Default(), display.NewHeadlessBackend(testLogger()), testLogger())
	before := s.Controller()

	cfg := config.Default()
	cfg.Height = 0
	assert.Error(t, s.Apply(context.Background(), cfg))
	assert.Same(t, before, s.Controller())
}
