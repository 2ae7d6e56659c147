package model

import (
	"fmt"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
)

// ItemSize categorizes the physical size of a returned item.
type ItemSize string

const (
	SizeSmall  ItemSize = "SMALL"
	SizeMedium ItemSize = "MEDIUM"
	SizeLarge  ItemSize = "LARGE"
)

// ParseItemSize validates a raw size category.
func ParseItemSize(raw string) (ItemSize, error) {
	switch ItemSize(raw) {
	case SizeSmall, SizeMedium, SizeLarge:
		return ItemSize(raw), nil
	}
	return "", fmt.Errorf("%w: unknown item size %q", domainErrors.ErrMalformedInput, raw)
}

// ReturnItem is one physical item within a return. Items mirror the parent
// return status; they have no independent lifecycle.
type ReturnItem struct {
	ID          string
	Retailer    string
	ProductName string
	QRCode      string
	Size        ItemSize
	Fragile     bool
}

// StatusUpdate is an immutable audit record of a status change.
type StatusUpdate struct {
	Status    ReturnStatus
	Timestamp time.Time
	Notes     string
}

// Return is the aggregate root: a scheduled pickup of one or more items going
// back to a retailer. Address is a snapshot taken at creation time, so later
// edits to the address book never rewrite history.
type Return struct {
	ID                  string
	UserID              string
	Status              ReturnStatus
	ScheduledDate       time.Time
	TimeWindow          string
	Items               []ReturnItem
	Address             Address
	DriverID            string
	DriverName          string
	DriverPhone         string
	SpecialInstructions string
	StatusUpdates       []StatusUpdate
	CreatedAt           time.Time
	LastUpdate          time.Time
}
