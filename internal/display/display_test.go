package display

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/screenbadge/internal/badge"
	"github.com/jmylchreest/screenbadge/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlacementFor_Default(t *testing.T) {
	p := PlacementFor(config.Default())

	assert.Equal(t, Placement{OffsetX: 0, OffsetY: 0, Width: 200, Height: 200}, p)
	assert.Equal(t, "200x200+0+0", p.String())
}

func TestPlacementFor_Custom(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 64
	cfg.Height = 32
	cfg.Monitor = 2

	p := PlacementFor(cfg)
	assert.Equal(t, "64x32+0+0", p.String())
	assert.Equal(t, 2, p.Monitor)
}

func TestDisplayError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DisplayError{Message: "cannot open display", Cause: cause}

	assert.Equal(t, "cannot open display: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no display available", ErrNoDisplay.Error())
}

func TestHeadlessWindow_CloseIsIdempotent(t *testing.T) {
	b := NewHeadlessBackend(testLogger())

	w, err := b.Open("s1", config.Default())
	require.NoError(t, err)

	select {
	case <-w.Done():
		t.Fatal("window done before close")
	default:
	}

	w.Close()
	w.Close()
	<-w.Done()
	assert.NoError(t, w.Err())
}

func TestHeadlessBackend_DrivesController(t *testing.T) {
	b := NewHeadlessBackend(testLogger())
	c := badge.NewController(config.Default(), b, testLogger())

	err := c.Run(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.False(t, c.Active())

	opened := b.Opened()
	require.Len(t, opened, 1)
	assert.Equal(t, "200x200+0+0", opened[0].String())
}
