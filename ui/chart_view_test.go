package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"netdash/chart"
	"netdash/rate"
	"netdash/telemetry"
)

func TestTypeOverrideCycle(t *testing.T) {
	if got := nextTypeOverride(""); got != telemetry.SeriesLine {
		t.Fatalf("after auto got %q", got)
	}
	if got := nextTypeOverride(telemetry.SeriesLine); got != telemetry.SeriesBar {
		t.Fatalf("after line got %q", got)
	}
	if got := nextTypeOverride(telemetry.SeriesBar); got != "" {
		t.Fatalf("after bar got %q", got)
	}
}

func TestExportSummaryUsesLatestSample(t *testing.T) {
	cfg := chart.Config{
		Categories: []string{"0", "1", "2"},
		Series: []chart.Series{
			{Name: "Upload", Data: []float64{0, 512, 1024}},
		},
		TooltipLabel: func(name string, v float64) string {
			return name + ": " + rate.Format(v, 4)
		},
	}
	got := exportSummary(cfg)
	want := "export 2: Upload: 1.000 Kb/s"
	if got != want {
		t.Fatalf("exportSummary = %q, want %q", got, want)
	}

	if exportSummary(chart.Config{Empty: true}) != "" {
		t.Fatalf("empty config must export nothing")
	}
}

func TestAxisTicksCoverInterval(t *testing.T) {
	cfg := chart.Config{
		AxisInterval: 1024,
		AxisMax:      3072,
		AxisLabel:    func(v float64) string { return rate.Format(v, -1) },
	}
	ticks := axisTicks(cfg)
	if len(ticks) != 4 {
		t.Fatalf("ticks = %d, want 4", len(ticks))
	}
	if ticks[0].label != "0b/s" {
		t.Fatalf("first tick = %q", ticks[0].label)
	}
	if ticks[1].label != "1 Kb/s" {
		t.Fatalf("second tick = %q", ticks[1].label)
	}
	if ticks[3].value != 3072 {
		t.Fatalf("last tick value = %v", ticks[3].value)
	}
}

func TestSeriesColorFallsBackToPalette(t *testing.T) {
	red := seriesColor(chart.Series{Color: "#ff0000"}, 3)
	if red != tcell.GetColor("#ff0000") {
		t.Fatalf("explicit color ignored")
	}
	if seriesColor(chart.Series{}, 0) != seriesPalette[0] {
		t.Fatalf("palette fallback broken for index 0")
	}
	if seriesColor(chart.Series{}, len(seriesPalette)) != seriesPalette[0] {
		t.Fatalf("palette must wrap around")
	}
}
