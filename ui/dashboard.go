package ui

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const footerText = " q quit   v data view   t line/bar   r restore   e export   ←/→ focus"

// Dashboard owns the tview application: a status line, the chart slot, a
// scrollback log pane, and a key hint footer. It implements Host so the
// surface manager can mount and replace whatever occupies the slot. All
// mutations funnel through the frame scheduler so redraws coalesce at the
// target frame rate.
type Dashboard struct {
	app     *tview.Application
	status  *tview.TextView
	slot    *tview.Flex
	logView *tview.TextView
	sched   *frameScheduler

	ready     chan struct{}
	readyOnce sync.Once
	stopOnce  sync.Once

	mu         sync.Mutex
	lastWidth  int
	lastHeight int
	onResize   func(width, height int)
	onKey      func(*tcell.EventKey) bool
	onQuit     func()
}

// NewDashboard builds the layout and wires input handling. Run starts the
// terminal session and blocks until Stop or a quit key. metrics may be nil;
// when set, the queue-to-draw delay of every frame is recorded there.
func NewDashboard(targetFPS int, enableMouse bool, metrics *Metrics) *Dashboard {
	d := &Dashboard{
		app:   tview.NewApplication(),
		ready: make(chan struct{}),
	}
	var observe func(time.Duration)
	if metrics != nil {
		observe = metrics.ObserveRender
	}
	d.sched = newFrameScheduler(d.app, targetFPS, 0, observe)

	d.status = tview.NewTextView().SetTextAlign(tview.AlignLeft)
	d.status.SetBackgroundColor(tcell.ColorDarkBlue)
	d.status.SetText(" starting")

	d.slot = tview.NewFlex().SetDirection(tview.FlexRow)

	d.logView = tview.NewTextView().SetScrollable(true).SetMaxLines(200)
	d.logView.SetBorder(true).SetTitle(" Log ").SetTitleAlign(tview.AlignLeft)
	d.logView.SetBorderColor(tcell.ColorGray)
	d.logView.SetChangedFunc(func() {
		d.sched.Schedule("log", func() {})
	})

	footer := tview.NewTextView().SetText(footerText)
	footer.SetTextColor(tcell.ColorGray)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.status, 1, 0, false).
		AddItem(d.slot, 0, 1, true).
		AddItem(d.logView, 8, 0, false).
		AddItem(footer, 1, 0, false)

	d.app.SetRoot(root, true).EnableMouse(enableMouse)
	d.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		width, height := screen.Size()
		d.readyOnce.Do(func() { close(d.ready) })
		d.mu.Lock()
		changed := width != d.lastWidth || height != d.lastHeight
		d.lastWidth, d.lastHeight = width, height
		resize := d.onResize
		d.mu.Unlock()
		if changed && resize != nil {
			resize(width, height)
		}
		return false
	})
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' {
			d.mu.Lock()
			quit := d.onQuit
			d.mu.Unlock()
			if quit != nil {
				quit()
			} else {
				d.Stop()
			}
			return nil
		}
		d.mu.Lock()
		handler := d.onKey
		d.mu.Unlock()
		if handler != nil && handler(event) {
			return nil
		}
		return event
	})
	return d
}

// SetResizeHandler registers the viewport reflow callback. The callback runs
// on the UI goroutine and must not block.
func (d *Dashboard) SetResizeHandler(fn func(width, height int)) {
	d.mu.Lock()
	d.onResize = fn
	d.mu.Unlock()
}

// SetKeyHandler registers the handler that receives keys not claimed by the
// dashboard itself.
func (d *Dashboard) SetKeyHandler(fn func(*tcell.EventKey) bool) {
	d.mu.Lock()
	d.onKey = fn
	d.mu.Unlock()
}

// SetQuitHandler registers the callback for q / Ctrl-C so shutdown can run
// through the normal orderly path instead of tearing the app down directly.
func (d *Dashboard) SetQuitHandler(fn func()) {
	d.mu.Lock()
	d.onQuit = fn
	d.mu.Unlock()
}

// Run starts the scheduler and the terminal session; it blocks until Stop.
func (d *Dashboard) Run() error {
	d.sched.Start()
	return d.app.Run()
}

// WaitReady blocks until the first frame has been drawn or ctx expires.
func (d *Dashboard) WaitReady(ctx context.Context) error {
	select {
	case <-d.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop flushes pending frame work and ends the terminal session. Safe to
// call more than once.
func (d *Dashboard) Stop() {
	d.stopOnce.Do(func() {
		d.sched.Stop()
		d.app.Stop()
	})
}

// SetStatus replaces the status line on the next frame.
func (d *Dashboard) SetStatus(text string) {
	d.sched.Schedule("status", func() {
		d.status.SetText(" " + text)
	})
}

// Redraw schedules a frame without mutating any widget, for surfaces whose
// state changed internally.
func (d *Dashboard) Redraw() {
	d.sched.Schedule("chart", func() {})
}

// LogWriter exposes the log pane as an io.Writer for the log fanout.
func (d *Dashboard) LogWriter() io.Writer { return d.logView }

// Dimensions returns the last observed screen size.
func (d *Dashboard) Dimensions() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastWidth, d.lastHeight
}

// MountSurface implements Host.
func (d *Dashboard) MountSurface(s Surface) {
	d.sched.Schedule("slot", func() {
		d.slot.Clear()
		d.slot.AddItem(s.Primitive(), 0, 1, true)
	})
}

// MountPlaceholder implements Host.
func (d *Dashboard) MountPlaceholder(text string) {
	d.sched.Schedule("slot", func() {
		view := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("\n\n" + text)
		view.SetTextColor(tcell.ColorGray)
		view.SetBorder(true).SetBorderColor(tcell.ColorGray)
		d.slot.Clear()
		d.slot.AddItem(view, 0, 1, false)
	})
}

// ClearSlot implements Host.
func (d *Dashboard) ClearSlot() {
	d.sched.Schedule("slot", func() {
		d.slot.Clear()
	})
}
