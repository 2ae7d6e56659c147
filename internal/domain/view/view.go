// Package view derives presentation data from returns: badge mappings,
// timeline positions, dashboard statistics, and list filtering. Everything
// here is pure; time-dependent calculations take an explicit now.
package view

import (
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/lifecycle"
	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// Severity drives color coding on the client. The mapping is stable: a status
// always yields the same severity.
type Severity string

const (
	SeverityNeutral     Severity = "neutral"
	SeverityInfo        Severity = "info"
	SeverityWarning     Severity = "warning"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

// Badge is the label/severity pair rendered next to a return.
type Badge struct {
	Label    string
	Severity Severity
}

// StatusBadge maps a status to its badge.
func StatusBadge(s model.ReturnStatus) Badge {
	switch s {
	case model.StatusPending:
		return Badge{Label: "Pending", Severity: SeverityNeutral}
	case model.StatusScheduled:
		return Badge{Label: "Scheduled", Severity: SeverityInfo}
	case model.StatusDriverAssigned:
		return Badge{Label: "Driver Assigned", Severity: SeverityInfo}
	case model.StatusPickedUp:
		return Badge{Label: "Picked Up", Severity: SeverityWarning}
	case model.StatusInTransit:
		return Badge{Label: "In Transit", Severity: SeverityWarning}
	case model.StatusDroppedOff:
		return Badge{Label: "Dropped Off", Severity: SeveritySuccess}
	case model.StatusCompleted:
		return Badge{Label: "Completed", Severity: SeveritySuccess}
	case model.StatusCancelled:
		return Badge{Label: "Cancelled", Severity: SeverityDestructive}
	}
	return Badge{Label: string(s), Severity: SeverityNeutral}
}

// StatusDescription is the sentence shown under the status header and used in
// push notification bodies.
func StatusDescription(s model.ReturnStatus) string {
	switch s {
	case model.StatusPending:
		return "Your return request has been submitted"
	case model.StatusScheduled:
		return "Pickup has been scheduled"
	case model.StatusDriverAssigned:
		return "A driver has been assigned to your pickup"
	case model.StatusPickedUp:
		return "Items have been picked up"
	case model.StatusInTransit:
		return "Items are on the way to the drop-off location"
	case model.StatusDroppedOff:
		return "Items have been dropped off at the retailer"
	case model.StatusCompleted:
		return "Return completed successfully"
	case model.StatusCancelled:
		return "Return has been cancelled"
	}
	return ""
}

// TimelineState positions a main-line status relative to the current one.
type TimelineState string

const (
	TimelinePast    TimelineState = "past"
	TimelineCurrent TimelineState = "current"
	TimelineFuture  TimelineState = "future"
)

// TimelineEntry is one row of the progress timeline.
type TimelineEntry struct {
	Status model.ReturnStatus
	State  TimelineState
}

// TimelineView is either the full main-line progression or a single collapsed
// cancelled marker.
type TimelineView struct {
	Cancelled bool
	Entries   []TimelineEntry
}

// Timeline renders the progress timeline for a status. The input status is
// always current, never past. CANCELLED collapses to a dedicated view with no
// main-line entries.
func Timeline(s model.ReturnStatus) TimelineView {
	current, ok := lifecycle.Ordinal(s)
	if !ok {
		return TimelineView{Cancelled: true}
	}

	line := model.MainLine()
	entries := make([]TimelineEntry, 0, len(line))
	for i, status := range line {
		state := TimelineFuture
		switch {
		case i < current:
			state = TimelinePast
		case i == current:
			state = TimelineCurrent
		}
		entries = append(entries, TimelineEntry{Status: status, State: state})
	}
	return TimelineView{Entries: entries}
}

// Stats are the dashboard counters.
type Stats struct {
	Active    int
	Pending   int
	Completed int
	ThisMonth int
}

// AggregateStats counts returns per dashboard bucket. The pending counter
// intentionally covers SCHEDULED only, matching observed product behavior.
func AggregateStats(returns []model.Return, now time.Time) Stats {
	var stats Stats
	for _, ret := range returns {
		switch ret.Status {
		case model.StatusScheduled, model.StatusDriverAssigned, model.StatusPickedUp, model.StatusInTransit:
			stats.Active++
		}
		if ret.Status == model.StatusScheduled {
			stats.Pending++
		}
		if ret.Status == model.StatusCompleted {
			stats.Completed++
		}
		if ret.CreatedAt.Year() == now.Year() && ret.CreatedAt.Month() == now.Month() {
			stats.ThisMonth++
		}
	}
	return stats
}

// Bucket selects a history filter tab.
type Bucket string

const (
	BucketAll       Bucket = "all"
	BucketActive    Bucket = "active"
	BucketCompleted Bucket = "completed"
)

// ParseBucket validates a raw bucket value.
func ParseBucket(raw string) (Bucket, bool) {
	switch Bucket(raw) {
	case BucketAll, BucketActive, BucketCompleted:
		return Bucket(raw), true
	}
	return "", false
}

// FilterByBucket returns the subsequence of returns matching the bucket,
// preserving input order.
func FilterByBucket(returns []model.Return, bucket Bucket) []model.Return {
	if bucket == BucketAll {
		return returns
	}

	filtered := make([]model.Return, 0, len(returns))
	for _, ret := range returns {
		switch bucket {
		case BucketActive:
			if ret.Status != model.StatusCompleted && ret.Status != model.StatusCancelled {
				filtered = append(filtered, ret)
			}
		case BucketCompleted:
			if ret.Status == model.StatusCompleted {
				filtered = append(filtered, ret)
			}
		}
	}
	return filtered
}
