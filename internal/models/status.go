package models

import "fmt"

type Status int

const (
	StatusPending Status = iota
	StatusFail
	StatusPass
)

// String returns the glyph used when rendering a report.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "Ok."
	case StatusFail:
		return "Err!"
	default:
		return "..."
	}
}

// Label is the machine-friendly name used in artifacts and metric labels.
func (s Status) Label() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return "pending"
	}
}

// rank orders leaves as Pass < Fail < Pending.
func (s Status) rank() int {
	switch s {
	case StatusPass:
		return 0
	case StatusFail:
		return 1
	default:
		return 2
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.Label()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*s = StatusPass
	case "fail":
		*s = StatusFail
	case "pending":
		*s = StatusPending
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}
