// Package ui owns the terminal dashboard: the render-surface lifecycle, the
// chart primitive, and the draw scheduler that coalesces updates.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"netdash/chart"
)

// Surface is one live chart instance bound to a screen region. At most one
// surface is alive at a time; the Manager is the only component allowed to
// create or dispose one.
type Surface interface {
	// Primitive exposes the drawable for mounting into the host slot.
	Primitive() tview.Primitive
	// Apply hands the surface a freshly shaped chart configuration.
	Apply(cfg chart.Config)
	// Reflow re-fits the surface to new container dimensions.
	Reflow(width, height int)
	// Dispose releases the surface; it must not draw afterwards.
	Dispose()
}

// SurfaceFactory builds a fresh surface. Tests substitute fakes so the
// lifecycle runs without a terminal.
type SurfaceFactory func() Surface

// InputSurface is implemented by surfaces that consume key events, such as
// the chart view's toolbox bindings.
type InputSurface interface {
	HandleKey(event *tcell.EventKey) bool
}

// Host owns the screen slot a surface or placeholder occupies.
type Host interface {
	MountSurface(s Surface)
	MountPlaceholder(text string)
	ClearSlot()
}
