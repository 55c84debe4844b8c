package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rivo/tview"

	"netdash/chart"
	"netdash/ui"
)

// consoleHost is the fallback when stdout is not a terminal or the UI is
// disabled in config. Instead of mounting widgets it prints one summary line
// per poll cycle, so piping the process into a file still captures the feed.
type consoleHost struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleHost(w io.Writer) *consoleHost {
	return &consoleHost{w: w}
}

// MountSurface implements ui.Host. Console surfaces print on Apply, so there
// is nothing to mount.
func (h *consoleHost) MountSurface(ui.Surface) {}

// MountPlaceholder implements ui.Host.
func (h *consoleHost) MountPlaceholder(text string) {
	h.printLine("-- " + text)
}

// ClearSlot implements ui.Host.
func (h *consoleHost) ClearSlot() {}

func (h *consoleHost) printLine(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.w, line)
}

// SurfaceFactory returns the factory the surface manager uses in console
// mode.
func (h *consoleHost) SurfaceFactory() ui.SurfaceFactory {
	return func() ui.Surface { return &consoleSurface{host: h} }
}

// consoleSurface renders a chart configuration as a text summary: the newest
// sample plus the average and peak markers for every series.
type consoleSurface struct {
	host *consoleHost
}

func (s *consoleSurface) Primitive() tview.Primitive { return nil }

func (s *consoleSurface) Apply(cfg chart.Config) {
	if cfg.Empty || len(cfg.Categories) == 0 {
		return
	}
	last := len(cfg.Categories) - 1
	parts := make([]string, 0, len(cfg.Series))
	for _, series := range cfg.Series {
		part := cfg.TooltipLabel(series.Name, series.Data[last])
		if series.Avg != nil {
			part += " avg " + series.Avg.Label
		}
		if series.Max != nil {
			part += " peak " + series.Max.Label
		}
		parts = append(parts, part)
	}
	s.host.printLine(fmt.Sprintf("t=%s  %s", cfg.Categories[last], strings.Join(parts, "  |  ")))
}

func (s *consoleSurface) Reflow(width, height int) {}

func (s *consoleSurface) Dispose() {}
