package display

import (
	"fmt"

	"github.com/jmylchreest/screenbadge/internal/config"
)

// Placement is where and how large a badge window is.
// Offsets are measured from the top-left corner of the monitor.
type Placement struct {
	OffsetX int
	OffsetY int
	Width   int
	Height  int
	Monitor int // 0 = compositor's choice, 1+ = specific monitor
}

// PlacementFor returns the placement of a badge described by cfg.
func PlacementFor(cfg config.BadgeConfig) Placement {
	x, y := cfg.Position()
	return Placement{
		OffsetX: x,
		OffsetY: y,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Monitor: cfg.Monitor,
	}
}

// String renders the placement as an X11-style geometry, e.g. "200x200+0+0".
func (p Placement) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", p.Width, p.Height, p.OffsetX, p.OffsetY)
}
