package enums

import "fmt"

// PlanID identifies a subscription plan tier.
type PlanID string

const (
	PlanBasic   PlanID = "basic"
	PlanPremium PlanID = "premium"
)

var validPlanIDs = []PlanID{
	PlanBasic,
	PlanPremium,
}

// IsValid reports whether the value matches a known plan tier.
func (p PlanID) IsValid() bool {
	for _, candidate := range validPlanIDs {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanID converts the raw string to PlanID.
func ParsePlanID(value string) (PlanID, error) {
	for _, candidate := range validPlanIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan id %q", value)
}
