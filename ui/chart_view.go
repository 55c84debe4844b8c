package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"netdash/chart"
	"netdash/telemetry"
)

var seriesPalette = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorAqua,
	tcell.ColorFuchsia,
	tcell.ColorOrange,
	tcell.ColorSilver,
}

// ChartView renders a chart.Config into its box with plain cells: a y-axis
// gutter labeled at every tick interval, one category per column (newest
// window when the axis outgrows the width), per-series line dots or bar
// fills, and the avg/max marker directives. The toolbox flags map to
// keybindings handled by HandleKey.
type ChartView struct {
	*tview.Box

	mu           sync.Mutex
	cfg          chart.Config
	typeOverride telemetry.SeriesType
	dataView     bool
	focus        int // focused category; -1 tracks the newest sample
	disposed     bool

	redraw func()
	export func(line string)
}

// NewChartView builds a chart surface. redraw schedules a screen refresh and
// export receives the snapshot line produced by the toolbox export binding.
func NewChartView(redraw func(), export func(line string)) *ChartView {
	v := &ChartView{
		Box:    tview.NewBox(),
		focus:  -1,
		redraw: redraw,
		export: export,
	}
	v.Box.SetBorder(true).SetTitle(" Throughput ").SetTitleAlign(tview.AlignLeft)
	v.Box.SetBorderColor(tcell.ColorGray)
	return v
}

// Primitive implements Surface.
func (v *ChartView) Primitive() tview.Primitive { return v }

// Apply implements Surface. The configuration replaces the previous one
// wholesale; the focused category is clamped to the new axis.
func (v *ChartView) Apply(cfg chart.Config) {
	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return
	}
	v.cfg = cfg
	if v.focus >= len(cfg.Categories) {
		v.focus = -1
	}
	v.mu.Unlock()
	v.scheduleRedraw()
}

// Reflow implements Surface. Cell layout is derived from the inner rect on
// every draw, so re-fitting only needs a refresh at the new dimensions.
func (v *ChartView) Reflow(width, height int) {
	v.scheduleRedraw()
}

// Dispose implements Surface.
func (v *ChartView) Dispose() {
	v.mu.Lock()
	v.disposed = true
	v.cfg = chart.Config{}
	v.mu.Unlock()
}

func (v *ChartView) scheduleRedraw() {
	if v.redraw != nil {
		v.redraw()
	}
}

// HandleKey implements InputSurface: arrow keys move the tooltip focus, the
// toolbox runes gate on the config's feature flags.
func (v *ChartView) HandleKey(event *tcell.EventKey) bool {
	v.mu.Lock()
	cfg := v.cfg
	handled := false
	n := len(cfg.Categories)
	switch event.Key() {
	case tcell.KeyLeft:
		if n > 0 {
			fi := v.focus
			if fi < 0 {
				fi = n - 1
			}
			if fi > 0 {
				fi--
			}
			v.focus = fi
			handled = true
		}
	case tcell.KeyRight:
		if n > 0 && v.focus >= 0 {
			v.focus++
			if v.focus >= n-1 {
				v.focus = -1
			}
			handled = true
		}
	}
	var exportLine string
	if !handled {
		switch event.Rune() {
		case 'v':
			if cfg.Toolbox.DataView {
				v.dataView = !v.dataView
				handled = true
			}
		case 't':
			if cfg.Toolbox.TypeSwitch {
				v.typeOverride = nextTypeOverride(v.typeOverride)
				handled = true
			}
		case 'r':
			if cfg.Toolbox.Restore {
				v.typeOverride = ""
				v.dataView = false
				v.focus = -1
				handled = true
			}
		case 'e':
			if cfg.Toolbox.Export {
				exportLine = exportSummary(cfg)
				handled = true
			}
		}
	}
	v.mu.Unlock()

	if exportLine != "" && v.export != nil {
		v.export(exportLine)
	}
	if handled {
		v.scheduleRedraw()
	}
	return handled
}

func nextTypeOverride(cur telemetry.SeriesType) telemetry.SeriesType {
	switch cur {
	case "":
		return telemetry.SeriesLine
	case telemetry.SeriesLine:
		return telemetry.SeriesBar
	default:
		return ""
	}
}

func exportSummary(cfg chart.Config) string {
	if cfg.Empty || len(cfg.Categories) == 0 {
		return ""
	}
	last := len(cfg.Categories) - 1
	parts := make([]string, 0, len(cfg.Series))
	for _, s := range cfg.Series {
		parts = append(parts, cfg.TooltipLabel(s.Name, s.Data[last]))
	}
	return fmt.Sprintf("export %s: %s", cfg.Categories[last], strings.Join(parts, ", "))
}

func (v *ChartView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()

	v.mu.Lock()
	cfg := v.cfg
	override := v.typeOverride
	dataView := v.dataView
	focus := v.focus
	disposed := v.disposed
	v.mu.Unlock()

	if disposed || width <= 0 || height <= 0 || cfg.Empty || len(cfg.Series) == 0 {
		return
	}
	if dataView {
		drawDataView(screen, x, y, width, height, cfg)
		return
	}
	drawChart(screen, x, y, width, height, cfg, override, focus)
}

func drawChart(screen tcell.Screen, x, y, width, height int, cfg chart.Config, override telemetry.SeriesType, focus int) {
	if height < 5 || cfg.AxisMax <= 0 || cfg.AxisInterval <= 0 {
		return
	}
	n := len(cfg.Categories)
	fi := focus
	if fi < 0 || fi >= n {
		fi = n - 1
	}

	drawLegend(screen, x, y, width, cfg)

	top := y + 1
	bottom := y + height - 3
	plotH := bottom - top + 1

	ticks := axisTicks(cfg)
	gutter := 0
	for _, t := range ticks {
		if len(t.label) > gutter {
			gutter = len(t.label)
		}
	}
	gutter++
	plotX := x + gutter
	plotW := width - gutter
	if plotW < 2 || plotH < 2 {
		return
	}

	rowFor := func(value float64) int {
		r := bottom - int(value/cfg.AxisMax*float64(plotH-1)+0.5)
		if r < top {
			r = top
		}
		if r > bottom {
			r = bottom
		}
		return r
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, t := range ticks {
		r := rowFor(t.value)
		drawText(screen, x+gutter-1-len(t.label), r, len(t.label), t.label, dim)
		screen.SetContent(plotX-1, r, '┤', nil, dim)
	}
	for r := top; r <= bottom; r++ {
		c, _, _, _ := screen.GetContent(plotX-1, r)
		if c == ' ' {
			screen.SetContent(plotX-1, r, '│', nil, dim)
		}
	}

	// Newest window when there are more categories than columns.
	start := 0
	if n > plotW {
		start = n - plotW
	}
	colFor := func(i int) int { return plotX + (i - start) }

	for si, s := range cfg.Series {
		style := tcell.StyleDefault.Foreground(seriesColor(s, si))
		kind := s.Type
		if override != "" {
			kind = override
		}
		for i := start; i < n; i++ {
			col := colFor(i)
			r := rowFor(s.Data[i])
			if kind == telemetry.SeriesBar {
				for br := r; br <= bottom; br++ {
					screen.SetContent(col, br, '█', nil, style)
				}
			} else {
				screen.SetContent(col, r, '•', nil, style)
			}
		}
		if s.Avg != nil {
			r := rowFor(s.Avg.Value)
			for col := plotX; col < plotX+plotW; col++ {
				c, _, _, _ := screen.GetContent(col, r)
				if c == ' ' {
					screen.SetContent(col, r, '╌', nil, style.Dim(true))
				}
			}
			drawText(screen, plotX+plotW-len(s.Avg.Label), r, len(s.Avg.Label), s.Avg.Label, style)
		}
		if s.Max != nil && s.Max.Index >= start && s.Max.Index < n {
			col := colFor(s.Max.Index)
			r := rowFor(s.Max.Value)
			screen.SetContent(col, r, '▲', nil, style.Bold(true))
			if col+1+len(s.Max.Label) <= plotX+plotW {
				drawText(screen, col+1, r, len(s.Max.Label), s.Max.Label, style)
			}
		}
	}

	drawAxisRow(screen, plotX, y+height-2, plotW, cfg.Categories, start, colFor(fi), dim)
	drawTooltip(screen, x, y+height-1, width, cfg, fi)
}

func drawLegend(screen tcell.Screen, x, y, width int, cfg chart.Config) {
	col := x
	for si, s := range cfg.Series {
		segment := "── " + s.Name + "  "
		if col+len(segment) > x+width {
			break
		}
		style := tcell.StyleDefault.Foreground(seriesColor(s, si))
		drawText(screen, col, y, len(segment), segment, style)
		col += len(segment)
	}
}

func drawAxisRow(screen tcell.Screen, plotX, y, plotW int, categories []string, start, focusCol int, dim tcell.Style) {
	n := len(categories)
	first := categories[start]
	drawText(screen, plotX, y, plotW, first, dim)
	last := categories[n-1]
	if lx := plotX + plotW - len(last); lx > plotX+len(first) {
		drawText(screen, lx, y, len(last), last, dim)
	}
	screen.SetContent(focusCol, y, '^', nil, dim.Bold(true))
}

func drawTooltip(screen tcell.Screen, x, y, width int, cfg chart.Config, fi int) {
	parts := make([]string, 0, len(cfg.Series)+1)
	parts = append(parts, cfg.Categories[fi])
	for _, s := range cfg.Series {
		parts = append(parts, cfg.TooltipLabel(s.Name, s.Data[fi]))
	}
	drawText(screen, x, y, width, strings.Join(parts, "  "), tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// drawDataView lists raw samples newest-first, one category per row.
func drawDataView(screen tcell.Screen, x, y, width, height int, cfg chart.Config) {
	header := "category"
	for _, s := range cfg.Series {
		header += "  " + s.Name
	}
	drawText(screen, x, y, width, header, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	row := y + 1
	for i := len(cfg.Categories) - 1; i >= 0 && row < y+height; i-- {
		line := cfg.Categories[i]
		for _, s := range cfg.Series {
			line += "  " + strconv.FormatFloat(s.Data[i], 'f', -1, 64)
		}
		drawText(screen, x, row, width, line, tcell.StyleDefault)
		row++
	}
}

type axisTick struct {
	value float64
	label string
}

func axisTicks(cfg chart.Config) []axisTick {
	ticks := make([]axisTick, 0, 11)
	for v := 0.0; v <= cfg.AxisMax; v += cfg.AxisInterval {
		ticks = append(ticks, axisTick{value: v, label: cfg.AxisLabel(v)})
	}
	return ticks
}

func seriesColor(s chart.Series, idx int) tcell.Color {
	if s.Color != "" {
		return tcell.GetColor(s.Color)
	}
	return seriesPalette[idx%len(seriesPalette)]
}

func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
