package model

import "time"

// Pickup is the driver-facing projection of a return awaiting collection.
type Pickup struct {
	ID            string
	CustomerName  string
	Address       Address
	ScheduledDate time.Time
	TimeWindow    string
	Status        ReturnStatus
	Items         []ReturnItem
}

// TrackingEvent is a status report from the carrier tracking system.
type TrackingEvent struct {
	ReturnID  string
	Status    ReturnStatus
	Timestamp time.Time
	Notes     string
}
