package dto

import (
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/view"
)

// NewItemRequest describes one item in a creation payload.
type NewItemRequest struct {
	Retailer    string `json:"retailer"`
	ProductName string `json:"productName"`
	QRCode      string `json:"qrCodeUrl,omitempty"`
	Size        string `json:"size"`
	Fragile     bool   `json:"fragile"`
}

// CreateReturnRequest describes POST /api/returns input.
type CreateReturnRequest struct {
	Status              string           `json:"status,omitempty"`
	ScheduledDate       time.Time        `json:"scheduledDate"`
	TimeWindow          string           `json:"timeWindow"`
	AddressID           string           `json:"addressId"`
	Items               []NewItemRequest `json:"items"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
}

// CancelReturnRequest carries the optional cancellation note.
type CancelReturnRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ItemResponse is the wire form of a return item.
type ItemResponse struct {
	ID          string `json:"id"`
	Retailer    string `json:"retailer"`
	ProductName string `json:"productName"`
	QRCode      string `json:"qrCodeUrl,omitempty"`
	Size        string `json:"size"`
	Fragile     bool   `json:"fragile"`
}

// StatusUpdateResponse is one audit trail entry.
type StatusUpdateResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// BadgeResponse is the presentation hint for a status.
type BadgeResponse struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// ReturnResponse is the full wire form of a return aggregate.
type ReturnResponse struct {
	ID                  string                 `json:"id"`
	Status              string                 `json:"status"`
	Badge               BadgeResponse          `json:"badge"`
	ScheduledDate       time.Time              `json:"scheduledDate"`
	TimeWindow          string                 `json:"timeWindow"`
	Items               []ItemResponse         `json:"items"`
	Address             model.Address          `json:"address"`
	DriverName          string                 `json:"driverName,omitempty"`
	DriverPhone         string                 `json:"driverPhone,omitempty"`
	SpecialInstructions string                 `json:"specialInstructions,omitempty"`
	CanCancel           bool                   `json:"canCancel"`
	StatusUpdates       []StatusUpdateResponse `json:"statusUpdates"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdate          time.Time              `json:"lastUpdate"`
}

// StatsResponse describes GET /api/returns/stats output.
type StatsResponse struct {
	Active    int `json:"active"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	ThisMonth int `json:"thisMonth"`
}

// TimelineEntryResponse is one step of the progress timeline.
type TimelineEntryResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	State  string `json:"state"`
}

// ReturnDetailResponse augments the aggregate with its progress timeline.
type ReturnDetailResponse struct {
	ReturnResponse
	Timeline []TimelineEntryResponse `json:"timeline"`
}

// ToReturnResponse maps an aggregate to its wire form, attaching the derived
// badge and cancellation hint so clients never re-implement the policy.
func ToReturnResponse(ret *model.Return, canCancel bool) ReturnResponse {
	badge := view.StatusBadge(ret.Status)

	items := make([]ItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, ItemResponse{
			ID:          item.ID,
			Retailer:    item.Retailer,
			ProductName: item.ProductName,
			QRCode:      item.QRCode,
			Size:        string(item.Size),
			Fragile:     item.Fragile,
		})
	}

	updates := make([]StatusUpdateResponse, 0, len(ret.StatusUpdates))
	for _, upd := range ret.StatusUpdates {
		updates = append(updates, StatusUpdateResponse{
			Status:    string(upd.Status),
			Timestamp: upd.Timestamp,
			Notes:     upd.Notes,
		})
	}

	return ReturnResponse{
		ID:                  ret.ID,
		Status:              string(ret.Status),
		Badge:               BadgeResponse{Label: badge.Label, Severity: string(badge.Severity)},
		ScheduledDate:       ret.ScheduledDate,
		TimeWindow:          ret.TimeWindow,
		Items:               items,
		Address:             ret.Address,
		DriverName:          ret.DriverName,
		DriverPhone:         ret.DriverPhone,
		SpecialInstructions: ret.SpecialInstructions,
		CanCancel:           canCancel,
		StatusUpdates:       updates,
		CreatedAt:           ret.CreatedAt,
		LastUpdate:          ret.LastUpdate,
	}
}

// ToStatsResponse maps the derived counters to their wire form.
func ToStatsResponse(s view.Stats) StatsResponse {
	return StatsResponse{
		Active:    s.Active,
		Pending:   s.Pending,
		Completed: s.Completed,
		ThisMonth: s.ThisMonth,
	}
}

// ToTimelineResponse renders the progress timeline for a status. A cancelled
// return collapses to a single current entry instead of the main line.
func ToTimelineResponse(status model.ReturnStatus) []TimelineEntryResponse {
	tl := view.Timeline(status)
	if tl.Cancelled {
		return []TimelineEntryResponse{{
			Status: string(model.StatusCancelled),
			Label:  view.StatusBadge(model.StatusCancelled).Label,
			State:  string(view.TimelineCurrent),
		}}
	}
	entries := make([]TimelineEntryResponse, 0, len(tl.Entries))
	for _, e := range tl.Entries {
		entries = append(entries, TimelineEntryResponse{
			Status: string(e.Status),
			Label:  view.StatusBadge(e.Status).Label,
			State:  string(e.State),
		})
	}
	return entries
}
