package model

import (
	"fmt"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
)

// Plan is a subscription tier. Absence of a subscription means the free tier.
type Plan string

const (
	PlanBasic     Plan = "BASIC"
	PlanStandard  Plan = "STANDARD"
	PlanUnlimited Plan = "UNLIMITED"
)

// ParsePlan validates a raw plan value.
func ParsePlan(raw string) (Plan, error) {
	switch Plan(raw) {
	case PlanBasic, PlanStandard, PlanUnlimited:
		return Plan(raw), nil
	}
	return "", fmt.Errorf("%w: unknown plan %q", domainErrors.ErrMalformedInput, raw)
}

// UnlimitedReturns marks a subscription without a usage cap.
const UnlimitedReturns = -1

// Subscription holds billing state owned by the billing subsystem; the service
// only reads it and advances the usage counter.
type Subscription struct {
	UserID           string
	Plan             Plan
	Status           string
	ReturnsUsed      int
	ReturnsLimit     int
	CurrentPeriodEnd time.Time
}

// HasCapacity reports whether another return may be scheduled this period.
func (s *Subscription) HasCapacity() bool {
	if s == nil {
		return true
	}
	if s.ReturnsLimit == UnlimitedReturns {
		return true
	}
	return s.ReturnsUsed < s.ReturnsLimit
}
