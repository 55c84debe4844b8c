// Package telemetry fetches and decodes the throughput document the dashboard
// polls: one JSON payload per poll carrying a shared category axis and one or
// more named rate series.
package telemetry

import (
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SeriesType selects the renderer hint for one series.
type SeriesType string

const (
	SeriesLine SeriesType = "line"
	SeriesBar  SeriesType = "bar"
)

// SeriesSpec is one named sequence of rate samples sharing the payload's
// category axis. Specs are constructed fresh on every poll response and never
// mutated; the next payload supersedes them wholesale.
type SeriesSpec struct {
	Name         string     `json:"name"`
	Data         []float64  `json:"data"`
	Color        string     `json:"color,omitempty"`
	Type         SeriesType `json:"type,omitempty"`
	ShowAvgLine  bool       `json:"show_avg_line,omitempty"`
	ShowMaxPoint bool       `json:"show_max_point,omitempty"`
}

// Payload is one telemetry document. Empty scales signal "no data yet".
type Payload struct {
	Scales []string     `json:"scales"`
	Series []SeriesSpec `json:"series_vec"`
}

// Decode parses a payload body. Malformed JSON surfaces as a DecodeError.
func Decode(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Payload{}, &DecodeError{Err: err}
	}
	return p, nil
}

// Empty reports the "no data yet" state.
func (p Payload) Empty() bool { return len(p.Scales) == 0 }

// Validate enforces the payload invariants for non-empty payloads: every
// series matches the axis length, at least one series exists, and every
// sample is finite. Empty payloads are always valid.
func (p Payload) Validate() error {
	if p.Empty() {
		return nil
	}
	if len(p.Series) == 0 {
		return &ContractError{Reason: "scales present but series_vec is empty"}
	}
	for _, s := range p.Series {
		if len(s.Data) != len(p.Scales) {
			return &ContractError{Reason: fmt.Sprintf(
				"series %q has %d samples for %d scales", s.Name, len(s.Data), len(p.Scales))}
		}
		for i, v := range s.Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &NumericError{Reason: fmt.Sprintf(
					"series %q sample %d is not finite", s.Name, i)}
			}
			if v < 0 {
				return &NumericError{Reason: fmt.Sprintf(
					"series %q sample %d is negative", s.Name, i)}
			}
		}
	}
	return nil
}

// Max returns the largest sample across all series. Call only after Validate
// on a non-empty payload.
func (p Payload) Max() float64 {
	max := math.Inf(-1)
	for _, s := range p.Series {
		for _, v := range s.Data {
			if v > max {
				max = v
			}
		}
	}
	return max
}
