package chart

import (
	"netdash/rate"
	"netdash/telemetry"
)

// markerPrecision is the significant-digit count for avg/max marker labels.
const markerPrecision = 4

// Adapt folds a telemetry payload into a renderer-ready Config. An empty
// payload yields Config{Empty: true}; payloads that violate the series
// contract or carry non-finite samples are refused with the telemetry error
// taxonomy so a garbled chart can never render.
func Adapt(p telemetry.Payload) (Config, error) {
	if p.Empty() {
		return Config{Empty: true}, nil
	}
	if err := p.Validate(); err != nil {
		return Config{}, err
	}

	series := make([]Series, 0, len(p.Series))
	legend := make([]string, 0, len(p.Series))
	for _, spec := range p.Series {
		series = append(series, buildSeries(spec))
		legend = append(legend, spec.Name)
	}

	interval, err := rate.PickInterval(p.Max())
	if err != nil {
		return Config{}, &telemetry.NumericError{Reason: "axis interval: " + err.Error()}
	}

	return Config{
		Categories:   p.Scales,
		Series:       series,
		Legend:       legend,
		AxisInterval: interval,
		AxisMax:      rate.AxisMax(p.Max(), interval),
		AxisLabel:    func(v float64) string { return rate.Format(v, -1) },
		TooltipLabel: func(name string, v float64) string {
			return name + ": " + rate.Format(v, markerPrecision)
		},
		Toolbox: Toolbox{DataView: true, TypeSwitch: true, Restore: true, Export: true},
	}, nil
}

// buildSeries folds one spec's flags into an immutable descriptor. Smoothed
// line is the default rendering; an explicit bar type overrides it.
func buildSeries(spec telemetry.SeriesSpec) Series {
	s := Series{
		Name:  spec.Name,
		Type:  telemetry.SeriesLine,
		Color: spec.Color,
		Data:  spec.Data,
	}
	if spec.Type == telemetry.SeriesBar {
		s.Type = telemetry.SeriesBar
	} else {
		s.Smooth = true
	}
	if spec.ShowAvgLine {
		avg := seriesAvg(spec.Data)
		s.Avg = &MarkerLine{Value: avg, Label: rate.Format(avg, markerPrecision)}
	}
	if spec.ShowMaxPoint {
		idx, max := seriesMax(spec.Data)
		s.Max = &MarkerPoint{Index: idx, Value: max, Label: rate.Format(max, markerPrecision)}
	}
	return s
}

func seriesAvg(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func seriesMax(data []float64) (int, float64) {
	idx := 0
	max := 0.0
	for i, v := range data {
		if i == 0 || v > max {
			idx, max = i, v
		}
	}
	return idx, max
}
