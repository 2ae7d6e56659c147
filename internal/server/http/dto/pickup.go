package dto

import (
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// PickupResponse is the driver-facing projection of an unclaimed return.
type PickupResponse struct {
	ID            string         `json:"id"`
	CustomerName  string         `json:"customerName"`
	Address       model.Address  `json:"address"`
	ScheduledDate time.Time      `json:"scheduledDate"`
	TimeWindow    string         `json:"timeWindow"`
	Status        string         `json:"status"`
	Items         []ItemResponse `json:"items"`
}

// ReportStatusRequest describes a driver-reported transition.
type ReportStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ToPickupResponse maps the projection to its wire form.
func ToPickupResponse(p model.Pickup) PickupResponse {
	items := make([]ItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, ItemResponse{
			ID:          item.ID,
			Retailer:    item.Retailer,
			ProductName: item.ProductName,
			QRCode:      item.QRCode,
			Size:        string(item.Size),
			Fragile:     item.Fragile,
		})
	}
	return PickupResponse{
		ID:            p.ID,
		CustomerName:  p.CustomerName,
		Address:       p.Address,
		ScheduledDate: p.ScheduledDate,
		TimeWindow:    p.TimeWindow,
		Status:        string(p.Status),
		Items:         items,
	}
}
