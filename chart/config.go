// Package chart shapes telemetry payloads into the declarative configuration
// the render surface consumes: renderer-ready series, axis metadata, and
// presentation hooks. A Config is immutable once built; the next poll
// supersedes it wholesale.
package chart

import "netdash/telemetry"

// MarkerLine is a horizontal reference line, used for per-series averages.
type MarkerLine struct {
	Value float64
	Label string
}

// MarkerPoint highlights a single sample, used for per-series maxima.
type MarkerPoint struct {
	Index int
	Value float64
	Label string
}

// Series is one renderer-ready series descriptor.
type Series struct {
	Name   string
	Type   telemetry.SeriesType
	Smooth bool
	Color  string
	Data   []float64
	Avg    *MarkerLine
	Max    *MarkerPoint
}

// Toolbox flags the interactive features the renderer should expose. They
// mirror the reference dashboard's toolbox: raw data view, line/bar switch,
// restore, and snapshot export.
type Toolbox struct {
	DataView   bool
	TypeSwitch bool
	Restore    bool
	Export     bool
}

// Config is the full declarative chart description. Empty means "show the
// no-data placeholder instead of a chart"; the remaining fields are only
// meaningful when Empty is false.
type Config struct {
	Empty bool

	Categories []string
	Series     []Series
	Legend     []string

	// Axis presentation derived from the global sample maximum.
	AxisInterval float64
	AxisMax      float64
	AxisLabel    func(value float64) string

	// TooltipLabel renders one "name: rate" tooltip entry.
	TooltipLabel func(name string, value float64) string

	Toolbox Toolbox
}
