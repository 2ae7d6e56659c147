package model

import (
	"fmt"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
)

// ReturnStatus describes the lifecycle stage of a return request.
type ReturnStatus string

const (
	StatusPending        ReturnStatus = "PENDING"
	StatusScheduled      ReturnStatus = "SCHEDULED"
	StatusDriverAssigned ReturnStatus = "DRIVER_ASSIGNED"
	StatusPickedUp       ReturnStatus = "PICKED_UP"
	StatusInTransit      ReturnStatus = "IN_TRANSIT"
	StatusDroppedOff     ReturnStatus = "DROPPED_OFF"
	StatusCompleted      ReturnStatus = "COMPLETED"
	StatusCancelled      ReturnStatus = "CANCELLED"
)

// mainLine is the canonical happy-path ordering. CANCELLED sits off the main
// line and never appears here.
var mainLine = [...]ReturnStatus{
	StatusPending,
	StatusScheduled,
	StatusDriverAssigned,
	StatusPickedUp,
	StatusInTransit,
	StatusDroppedOff,
	StatusCompleted,
}

// MainLine returns the ordered happy-path statuses. Callers receive a copy.
func MainLine() []ReturnStatus {
	line := make([]ReturnStatus, len(mainLine))
	copy(line, mainLine[:])
	return line
}

// Statuses returns every known status, main line plus CANCELLED.
func Statuses() []ReturnStatus {
	return append(MainLine(), StatusCancelled)
}

// ParseReturnStatus validates a raw status value coming from an external
// collaborator. Unknown values are rejected, never defaulted.
func ParseReturnStatus(raw string) (ReturnStatus, error) {
	candidate := ReturnStatus(raw)
	for _, s := range mainLine {
		if candidate == s {
			return s, nil
		}
	}
	if candidate == StatusCancelled {
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: unknown return status %q", domainErrors.ErrMalformedInput, raw)
}
