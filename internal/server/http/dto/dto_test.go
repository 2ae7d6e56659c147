package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

func sampleReturn() *model.Return {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	picked := created.Add(48 * time.Hour)
	return &model.Return{
		ID:            "ret-1",
		UserID:        "user-1",
		Status:        model.StatusPickedUp,
		ScheduledDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		TimeWindow:    "morning",
		Items: []model.ReturnItem{
			{ID: "item-1", Retailer: "Amazon", ProductName: "Headphones", Size: model.SizeSmall, Fragile: true},
			{ID: "item-2", Retailer: "Target", ProductName: "Lamp", Size: model.SizeLarge},
		},
		Address:     model.Address{ID: "addr-1", Label: "Home", ZipCode: "78701"},
		DriverName:  "Pat Driver",
		DriverPhone: "+1-555-0100",
		StatusUpdates: []model.StatusUpdate{
			{Status: model.StatusPending, Timestamp: created},
			{Status: model.StatusScheduled, Timestamp: created.Add(time.Hour)},
			{Status: model.StatusDriverAssigned, Timestamp: created.Add(24 * time.Hour)},
			{Status: model.StatusPickedUp, Timestamp: picked, Notes: "collected at door"},
		},
		CreatedAt:  created,
		LastUpdate: picked,
	}
}

func TestToReturnResponse(t *testing.T) {
	ret := sampleReturn()
	resp := ToReturnResponse(ret, false)

	if resp.ID != "ret-1" || resp.Status != "PICKED_UP" {
		t.Fatalf("unexpected identity: %+v", resp)
	}
	if resp.Badge.Label != "Picked Up" || resp.Badge.Severity != "warning" {
		t.Fatalf("unexpected badge: %+v", resp.Badge)
	}
	if resp.CanCancel {
		t.Fatal("canCancel flag must follow the argument")
	}
	if len(resp.Items) != 2 || resp.Items[0].Size != "SMALL" || !resp.Items[0].Fragile {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
	if len(resp.StatusUpdates) != 4 {
		t.Fatalf("expected full audit trail, got %d entries", len(resp.StatusUpdates))
	}
	if resp.StatusUpdates[0].Status != "PENDING" || resp.StatusUpdates[3].Notes != "collected at door" {
		t.Fatalf("audit trail order lost: %+v", resp.StatusUpdates)
	}
	if !resp.LastUpdate.Equal(ret.LastUpdate) {
		t.Fatalf("unexpected last update %s", resp.LastUpdate)
	}
	if resp.DriverName != "Pat Driver" {
		t.Fatalf("unexpected driver name %q", resp.DriverName)
	}
}

func TestReturnResponseJSONRoundTrip(t *testing.T) {
	ret := sampleReturn()
	resp := ToReturnResponse(ret, false)

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var decoded ReturnResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(decoded.StatusUpdates) != len(ret.StatusUpdates) {
		t.Fatalf("expected %d audit entries, got %d", len(ret.StatusUpdates), len(decoded.StatusUpdates))
	}
	for i, upd := range ret.StatusUpdates {
		got := decoded.StatusUpdates[i]
		if got.Status != string(upd.Status) {
			t.Fatalf("entry %d: expected status %s, got %s", i, upd.Status, got.Status)
		}
		if !got.Timestamp.Equal(upd.Timestamp) {
			t.Fatalf("entry %d: expected timestamp %s, got %s", i, upd.Timestamp, got.Timestamp)
		}
		if got.Notes != upd.Notes {
			t.Fatalf("entry %d: expected notes %q, got %q", i, upd.Notes, got.Notes)
		}
	}
	if !decoded.LastUpdate.Equal(ret.LastUpdate) {
		t.Fatalf("expected last update %s, got %s", ret.LastUpdate, decoded.LastUpdate)
	}
}

func TestToTimelineResponse(t *testing.T) {
	entries := ToTimelineResponse(model.StatusDroppedOff)
	if len(entries) != len(model.MainLine()) {
		t.Fatalf("expected one entry per main-line status, got %d", len(entries))
	}

	var current int
	for i, entry := range entries {
		if entry.State == "current" {
			current = i
			if entry.Status != string(model.StatusDroppedOff) {
				t.Fatalf("current entry has status %q", entry.Status)
			}
		}
		if entry.Label == "" {
			t.Fatalf("entry %d missing label", i)
		}
	}
	for i, entry := range entries {
		switch {
		case i < current && entry.State != "past":
			t.Fatalf("entry %d before current should be past, got %q", i, entry.State)
		case i > current && entry.State != "future":
			t.Fatalf("entry %d after current should be future, got %q", i, entry.State)
		}
	}
}

func TestToTimelineResponseCancelled(t *testing.T) {
	entries := ToTimelineResponse(model.StatusCancelled)
	if len(entries) != 1 {
		t.Fatalf("cancelled timeline must collapse to one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Status != string(model.StatusCancelled) || entry.Label != "Cancelled" || entry.State != "current" {
		t.Fatalf("unexpected collapsed entry: %+v", entry)
	}
}

func TestToProfileResponse(t *testing.T) {
	profile := &model.Profile{
		User: model.User{ID: "user-1", Name: "Test User", Email: "test@example.com", Phone: "+1-555-0100", Role: model.RoleCustomer},
	}
	resp := ToProfileResponse(profile)
	if resp.ID != "user-1" || resp.Role != "CUSTOMER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Subscription != nil {
		t.Fatal("free tier must carry no subscription block")
	}

	profile.Subscription = &model.Subscription{Plan: model.PlanUnlimited, ReturnsLimit: 0, ReturnsUsed: 12}
	resp = ToProfileResponse(profile)
	if resp.Subscription == nil || resp.Subscription.Plan != "UNLIMITED" || resp.Subscription.ReturnsUsed != 12 {
		t.Fatalf("unexpected subscription: %+v", resp.Subscription)
	}
}

func TestToAddressModel(t *testing.T) {
	req := CreateAddressRequest{Label: "Home", Street: "1 Main St", Apartment: "4B", City: "Austin", State: "TX", ZipCode: "78701", IsDefault: true}
	addr := req.ToAddressModel()
	if addr.Label != "Home" || addr.Apartment != "4B" || addr.ZipCode != "78701" || !addr.IsDefault {
		t.Fatalf("unexpected mapping: %+v", addr)
	}
}
