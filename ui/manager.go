package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Manager owns the render-target lifecycle. It keeps at most one surface
// alive and is the only writer of that reference; the poller's success,
// empty, and failure branches plus the resize handler all go through it.
type Manager struct {
	mu      sync.Mutex
	host    Host
	factory SurfaceFactory
	active  Surface
}

// NewManager wires a lifecycle manager to its host slot and surface factory.
func NewManager(host Host, factory SurfaceFactory) *Manager {
	return &Manager{host: host, factory: factory}
}

// EnsureSurface returns the active surface, constructing and mounting a fresh
// one only when none exists. Steady-state polls reuse the surface; a new one
// is built only at first run or after a placeholder tore the previous down.
func (m *Manager) EnsureSurface() Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return m.active
	}
	s := m.factory()
	m.host.MountSurface(s)
	m.active = s
	return s
}

// ShowPlaceholder disposes any active surface and replaces the slot with a
// text-only pane. Used for both the "no data yet" and "fetch failed" states.
func (m *Manager) ShowPlaceholder(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Dispose()
		m.active = nil
	}
	m.host.MountPlaceholder(text)
}

// Dispose tears down the active surface. Idempotent; safe with none active.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return
	}
	m.active.Dispose()
	m.active = nil
	m.host.ClearSlot()
}

// Reflow forwards new container dimensions to the active surface; no-op when
// only a placeholder is showing.
func (m *Manager) Reflow(width, height int) {
	m.mu.Lock()
	s := m.active
	m.mu.Unlock()
	if s != nil {
		s.Reflow(width, height)
	}
}

// HandleKey routes a key event to the active surface when it accepts input.
func (m *Manager) HandleKey(event *tcell.EventKey) bool {
	m.mu.Lock()
	s := m.active
	m.mu.Unlock()
	if in, ok := s.(InputSurface); ok {
		return in.HandleKey(event)
	}
	return false
}

// Active exposes the current surface for wiring and tests; callers must not
// dispose it themselves.
func (m *Manager) Active() Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
