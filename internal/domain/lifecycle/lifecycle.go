// Package lifecycle implements the return status state machine: which
// transitions are structurally legal, where a status sits on the main line,
// and how status updates are applied to the Return aggregate.
package lifecycle

import (
	"fmt"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// IsTerminal reports whether no transition may leave the status.
func IsTerminal(s model.ReturnStatus) bool {
	return s == model.StatusCompleted || s == model.StatusCancelled
}

// Ordinal returns the zero-based main-line index of a status. The second
// return value is false for CANCELLED, which sits off the main line and must
// be rendered as a distinct case rather than compared numerically.
func Ordinal(s model.ReturnStatus) (int, bool) {
	for i, ms := range model.MainLine() {
		if ms == s {
			return i, true
		}
	}
	return 0, false
}

// IsValidTransition decides structural legality of a status change.
// Any non-terminal status may move to CANCELLED; main-line statuses may only
// advance to their immediate successor. Terminal statuses admit nothing.
func IsValidTransition(from, to model.ReturnStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if to == model.StatusCancelled {
		return true
	}
	fromIdx, fromOK := Ordinal(from)
	toIdx, toOK := Ordinal(to)
	if !fromOK || !toOK {
		return false
	}
	return toIdx == fromIdx+1
}

// CanCancel is the user-facing cancellation policy: once a driver is assigned
// or items are in physical handling, the customer can no longer cancel even
// though a CANCELLED transition remains structurally legal.
func CanCancel(s model.ReturnStatus) bool {
	return s == model.StatusPending || s == model.StatusScheduled
}

// NewReturn constructs the aggregate in its initial state and seeds the audit
// trail with the first status update.
func NewReturn(id, userID string, initial model.ReturnStatus, scheduledDate time.Time, timeWindow string, items []model.ReturnItem, address model.Address, instructions string, now time.Time) (*model.Return, error) {
	if initial != model.StatusPending && initial != model.StatusScheduled {
		return nil, fmt.Errorf("%w: initial status must be PENDING or SCHEDULED, got %s", domainErrors.ErrMalformedInput, initial)
	}
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyItemList
	}

	ret := &model.Return{
		ID:                  id,
		UserID:              userID,
		Status:              initial,
		ScheduledDate:       scheduledDate,
		TimeWindow:          timeWindow,
		Items:               items,
		Address:             address,
		SpecialInstructions: instructions,
		StatusUpdates: []model.StatusUpdate{
			{Status: initial, Timestamp: now},
		},
		CreatedAt:  now,
		LastUpdate: now,
	}
	return ret, nil
}

// Apply appends a status update to the aggregate. The expected status is the
// optimistic precondition: if the aggregate has moved on since the caller read
// it, the update is rejected with ErrConflict instead of overwriting newer
// state. Illegal transitions surface the offending pair.
func Apply(ret *model.Return, update model.StatusUpdate, expected model.ReturnStatus) error {
	if ret.Status != expected {
		return domainErrors.ErrConflict
	}
	if !IsValidTransition(ret.Status, update.Status) {
		return domainErrors.InvalidTransitionError{From: string(ret.Status), To: string(update.Status)}
	}
	if update.Timestamp.Before(ret.LastUpdate) {
		update.Timestamp = ret.LastUpdate
	}

	ret.Status = update.Status
	ret.StatusUpdates = append(ret.StatusUpdates, update)
	ret.LastUpdate = update.Timestamp
	return nil
}
