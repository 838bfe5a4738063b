package enums

import "fmt"

// HistoryKind tags the entry types stored in the bounded session history.
type HistoryKind string

const (
	HistoryKindAnalysis    HistoryKind = "analysis"
	HistoryKindOrder       HistoryKind = "order"
	HistoryKindAppointment HistoryKind = "appointment"
)

var validHistoryKinds = []HistoryKind{
	HistoryKindAnalysis,
	HistoryKindOrder,
	HistoryKindAppointment,
}

// IsValid reports whether the value matches a known history entry kind.
func (h HistoryKind) IsValid() bool {
	for _, candidate := range validHistoryKinds {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHistoryKind converts the raw string to HistoryKind.
func ParseHistoryKind(value string) (HistoryKind, error) {
	for _, candidate := range validHistoryKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid history kind %q", value)
}
