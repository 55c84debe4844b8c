package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"netdash/chart"
)

type fakeSurface struct {
	applied  []chart.Config
	reflows  [][2]int
	disposed int
	handled  bool
}

func (f *fakeSurface) Primitive() tview.Primitive  { return tview.NewBox() }
func (f *fakeSurface) Apply(cfg chart.Config)      { f.applied = append(f.applied, cfg) }
func (f *fakeSurface) Reflow(w, h int)             { f.reflows = append(f.reflows, [2]int{w, h}) }
func (f *fakeSurface) Dispose()                    { f.disposed++ }
func (f *fakeSurface) HandleKey(*tcell.EventKey) bool { return f.handled }

type fakeHost struct {
	mounted      []Surface
	placeholders []string
	cleared      int
}

func (h *fakeHost) MountSurface(s Surface)       { h.mounted = append(h.mounted, s) }
func (h *fakeHost) MountPlaceholder(text string) { h.placeholders = append(h.placeholders, text) }
func (h *fakeHost) ClearSlot()                   { h.cleared++ }

func TestManagerReusesActiveSurface(t *testing.T) {
	host := &fakeHost{}
	built := 0
	m := NewManager(host, func() Surface {
		built++
		return &fakeSurface{}
	})

	first := m.EnsureSurface()
	second := m.EnsureSurface()
	if first != second {
		t.Fatalf("expected the active surface to be reused")
	}
	if built != 1 {
		t.Fatalf("factory calls = %d, want 1", built)
	}
	if len(host.mounted) != 1 {
		t.Fatalf("mounted %d surfaces, want 1", len(host.mounted))
	}
}

func TestManagerPlaceholderDisposesSurface(t *testing.T) {
	host := &fakeHost{}
	m := NewManager(host, func() Surface { return &fakeSurface{} })

	s := m.EnsureSurface().(*fakeSurface)
	m.ShowPlaceholder("no data yet, wait 10 seconds")

	if s.disposed != 1 {
		t.Fatalf("disposed = %d, want 1", s.disposed)
	}
	if len(host.placeholders) != 1 || host.placeholders[0] != "no data yet, wait 10 seconds" {
		t.Fatalf("placeholders = %v", host.placeholders)
	}
	if m.Active() != nil {
		t.Fatalf("expected no active surface after placeholder")
	}

	// A fresh surface gets built on the next ensure.
	if m.EnsureSurface().(*fakeSurface) == s {
		t.Fatalf("expected a new surface after placeholder")
	}
}

func TestManagerDisposeIdempotent(t *testing.T) {
	host := &fakeHost{}
	m := NewManager(host, func() Surface { return &fakeSurface{} })
	s := m.EnsureSurface().(*fakeSurface)

	m.Dispose()
	m.Dispose()

	if s.disposed != 1 {
		t.Fatalf("disposed = %d, want 1", s.disposed)
	}
	if host.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", host.cleared)
	}
}

func TestManagerReflowWithoutSurface(t *testing.T) {
	m := NewManager(&fakeHost{}, func() Surface { return &fakeSurface{} })
	m.Reflow(80, 24) // must not panic or build a surface
	if m.Active() != nil {
		t.Fatalf("reflow must not create a surface")
	}

	s := m.EnsureSurface().(*fakeSurface)
	m.Reflow(120, 40)
	if len(s.reflows) != 1 || s.reflows[0] != [2]int{120, 40} {
		t.Fatalf("reflows = %v", s.reflows)
	}
}

func TestManagerRoutesKeys(t *testing.T) {
	m := NewManager(&fakeHost{}, func() Surface { return &fakeSurface{handled: true} })
	ev := tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone)

	if m.HandleKey(ev) {
		t.Fatalf("no surface mounted, key must not be handled")
	}
	m.EnsureSurface()
	if !m.HandleKey(ev) {
		t.Fatalf("expected the active surface to claim the key")
	}
}
