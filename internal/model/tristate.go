package model

import "strings"

// TriState models a yes/no field whose source data is frequently absent or
// inconsistently encoded ("S", "s", "N", true, empty). All interpretation
// happens once, at the ingestion boundary, via ParseTriState.
type TriState int8

const (
	TriUnset TriState = iota
	TriYes
	TriNo
)

// ParseTriState normalizes the loose source encodings of a boolean-ish cell.
// Unrecognized values map to TriUnset rather than an error.
func ParseTriState(raw string) TriState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s", "si", "sí", "y", "yes", "true", "1":
		return TriYes
	case "n", "no", "false", "0":
		return TriNo
	default:
		return TriUnset
	}
}

func (t TriState) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unset"
	}
}

// DBValue maps the tri-state onto a nullable boolean column.
func (t TriState) DBValue() *bool {
	switch t {
	case TriYes:
		v := true
		return &v
	case TriNo:
		v := false
		return &v
	default:
		return nil
	}
}

// TriStateFromDB converts a nullable boolean column back to a TriState.
func TriStateFromDB(v *bool) TriState {
	switch {
	case v == nil:
		return TriUnset
	case *v:
		return TriYes
	default:
		return TriNo
	}
}
