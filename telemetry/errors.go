package telemetry

import "fmt"

// TransportError covers rejected fetches and non-2xx responses. The poll
// boundary maps it to the failed placeholder; detail goes to the log only.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("telemetry: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("telemetry: fetch failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError covers bodies that are not valid JSON or do not match the
// payload shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("telemetry: decode payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ContractError flags payloads that violate the series/scales invariants:
// a series whose length mismatches the category axis, or a non-empty axis
// with nothing to plot.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "telemetry: payload contract violated: " + e.Reason
}

// NumericError flags non-finite samples before they can reach the maximum
// reduction or the axis scaler.
type NumericError struct {
	Reason string
}

func (e *NumericError) Error() string {
	return "telemetry: " + e.Reason
}
