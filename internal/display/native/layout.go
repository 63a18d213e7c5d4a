package native

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/screenbadge/internal/display"
)

// placeWindow pins a window to its placement. It must run on the GTK thread
// before the window is first presented.
// Returns false when the compositor has no layer-shell support; the window
// is then a plain undecorated toplevel whose position is up to the
// window manager.
func placeWindow(window *gtk.Window, gdkDisplay *gdk.Display, placement display.Placement, namespace string, logger *slog.Logger) bool {
	window.SetDefaultSize(placement.Width, placement.Height)
	window.SetSizeRequest(placement.Width, placement.Height)

	if !layershell.IsSupported() {
		return false
	}

	layershell.InitForWindow(window)
	layershell.SetLayer(window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(window, -1) // Ignore other surfaces' exclusive zones
	layershell.SetKeyboardMode(window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(window, namespace)

	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, false)
	layershell.SetMargin(window, layershell.LayerShellEdgeTop, placement.OffsetY)
	layershell.SetMargin(window, layershell.LayerShellEdgeLeft, placement.OffsetX)

	if monitor := monitorFor(gdkDisplay, placement.Monitor, logger); monitor != nil {
		layershell.SetMonitor(window, monitor)
	}
	return true
}

// monitorFor returns the monitor to show the badge on.
// Config values:
// - 0: compositor's choice (returns nil)
// - 1+: specific monitor (1-indexed)
//
// Falls back to the first monitor if the configured one is not available.
func monitorFor(gdkDisplay *gdk.Display, monitorNum int, logger *slog.Logger) *gdk.Monitor {
	if gdkDisplay == nil || monitorNum == 0 {
		return nil
	}

	monitors := gdkDisplay.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors list available")
		return nil
	}

	index := uint(monitorNum - 1)
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", monitorNum,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// gotk4 doesn't export its own wrapMonitor, but gdk.Monitor is a struct
// embedding *coreglib.Object, so the native pointer can be recast.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
