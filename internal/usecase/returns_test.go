package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/view"
	testhelpers "github.com/returnhelper/returnsvc/internal/test"
	. "github.com/returnhelper/returnsvc/internal/usecase"
)

func createInput(addressID string) CreateReturnInput {
	return CreateReturnInput{
		InitialStatus: model.StatusScheduled,
		ScheduledDate: time.Now().AddDate(0, 0, 2),
		TimeWindow:    "morning",
		AddressID:     addressID,
		Items: []NewItemInput{
			{Retailer: "Amazon", ProductName: "Headphones", Size: model.SizeSmall},
			{Retailer: "Target", ProductName: "Blender", Size: model.SizeMedium, Fragile: true},
		},
	}
}

func seededAddresses(userID string) *testhelpers.AddressRepositoryStub {
	return &testhelpers.AddressRepositoryStub{Items: []model.Address{
		{ID: "addr-1", UserID: userID, Label: "Home", Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"},
	}}
}

func TestCreateReturn(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{}
	subs := &testhelpers.SubscriptionRepositoryStub{}
	uc := NewReturnUseCase(returns, seededAddresses("user-1"), subs)

	ret, err := uc.Create(context.Background(), "user-1", createInput("addr-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.ID == "" {
		t.Fatal("expected generated return id")
	}
	if len(ret.Items) != 2 || ret.Items[0].ID == "" || ret.Items[1].ID == "" {
		t.Fatalf("expected items with generated ids, got %+v", ret.Items)
	}
	if ret.Address.ID != "addr-1" {
		t.Fatalf("expected address snapshot, got %+v", ret.Address)
	}
	if len(returns.Created) != 1 {
		t.Fatalf("expected one persisted return, got %d", len(returns.Created))
	}
	if len(subs.Increments) != 0 {
		t.Fatal("free tier must not touch the usage counter")
	}
}

func TestCreateReturnIncrementsSubscriptionUsage(t *testing.T) {
	subs := &testhelpers.SubscriptionRepositoryStub{Subscription: &model.Subscription{
		UserID: "user-1", Plan: model.PlanBasic, ReturnsLimit: 3, ReturnsUsed: 1,
	}}
	uc := NewReturnUseCase(&testhelpers.ReturnRepositoryStub{}, seededAddresses("user-1"), subs)

	if _, err := uc.Create(context.Background(), "user-1", createInput("addr-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs.Increments) != 1 {
		t.Fatalf("expected one usage increment, got %d", len(subs.Increments))
	}
}

func TestCreateReturnLimitReached(t *testing.T) {
	subs := &testhelpers.SubscriptionRepositoryStub{Subscription: &model.Subscription{
		UserID: "user-1", Plan: model.PlanBasic, ReturnsLimit: 3, ReturnsUsed: 3,
	}}
	returns := &testhelpers.ReturnRepositoryStub{}
	uc := NewReturnUseCase(returns, seededAddresses("user-1"), subs)

	_, err := uc.Create(context.Background(), "user-1", createInput("addr-1"))
	if !errors.Is(err, domainErrors.ErrReturnLimitReached) {
		t.Fatalf("expected limit reached, got %v", err)
	}
	if len(returns.Created) != 0 {
		t.Fatal("nothing must be persisted when the limit blocks creation")
	}
}

func TestCreateReturnForeignAddress(t *testing.T) {
	uc := NewReturnUseCase(&testhelpers.ReturnRepositoryStub{}, seededAddresses("someone-else"), &testhelpers.SubscriptionRepositoryStub{})

	if _, err := uc.Create(context.Background(), "user-1", createInput("addr-1")); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign address, got %v", err)
	}
}

func TestCreateReturnEmptyItems(t *testing.T) {
	uc := NewReturnUseCase(&testhelpers.ReturnRepositoryStub{}, seededAddresses("user-1"), &testhelpers.SubscriptionRepositoryStub{})

	input := createInput("addr-1")
	input.Items = nil
	if _, err := uc.Create(context.Background(), "user-1", input); !errors.Is(err, domainErrors.ErrEmptyItemList) {
		t.Fatalf("expected empty item list, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusScheduled},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	if _, err := uc.Get(context.Background(), "user-1", "ret-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Get(context.Background(), "intruder", "ret-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign return, got %v", err)
	}
}

func TestListByUserAppliesBucket(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusInTransit},
		{ID: "ret-2", UserID: "user-1", Status: model.StatusCompleted},
		{ID: "ret-3", UserID: "user-1", Status: model.StatusCancelled},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	active, err := uc.ListByUser(context.Background(), "user-1", view.BucketActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != "ret-1" {
		t.Fatalf("unexpected active bucket: %+v", active)
	}

	all, err := uc.ListByUser(context.Background(), "user-1", view.BucketAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full history, got %d", len(all))
	}
}

func TestCancelWithinWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusScheduled, LastUpdate: now.Add(-time.Hour)},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	ret, err := uc.Cancel(context.Background(), "user-1", "ret-1", "changed my mind", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.Status != model.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", ret.Status)
	}
	if len(returns.Updates) != 1 {
		t.Fatalf("expected one persisted update, got %d", len(returns.Updates))
	}
	upd := returns.Updates[0]
	if upd.Expected != model.StatusScheduled || upd.Update.Status != model.StatusCancelled || upd.Update.Notes != "changed my mind" {
		t.Fatalf("unexpected persisted update: %+v", upd)
	}
}

func TestCancelAfterWindowClosed(t *testing.T) {
	for _, status := range []model.ReturnStatus{model.StatusDriverAssigned, model.StatusPickedUp, model.StatusCompleted} {
		returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
			{ID: "ret-1", UserID: "user-1", Status: status},
		}}
		uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

		_, err := uc.Cancel(context.Background(), "user-1", "ret-1", "", time.Now().UTC())
		if !errors.Is(err, domainErrors.ErrCancellationNotAllowed) {
			t.Fatalf("status %s: expected cancellation not allowed, got %v", status, err)
		}
		if len(returns.Updates) != 0 {
			t.Fatalf("status %s: nothing must be persisted", status)
		}
	}
}

func TestApplyExternalUpdateConflict(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusInTransit},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	update := model.StatusUpdate{Status: model.StatusPickedUp, Timestamp: time.Now()}
	_, err := uc.ApplyExternalUpdate(context.Background(), "ret-1", update, model.StatusDriverAssigned)
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for stale expected status, got %v", err)
	}
}

func TestApplyExternalUpdateAdvances(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusPickedUp},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	update := model.StatusUpdate{Status: model.StatusInTransit, Timestamp: time.Now(), Notes: "departed facility"}
	ret, err := uc.ApplyExternalUpdate(context.Background(), "ret-1", update, model.StatusPickedUp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.Status != model.StatusInTransit {
		t.Fatalf("expected IN_TRANSIT, got %s", ret.Status)
	}
	if len(returns.Updates) != 1 || returns.Updates[0].Update.Notes != "departed facility" {
		t.Fatalf("unexpected persisted update: %+v", returns.Updates)
	}
}

func TestStatsDelegatesToView(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", Status: model.StatusScheduled, CreatedAt: now},
		{ID: "ret-2", Status: model.StatusCompleted, CreatedAt: now.AddDate(0, -2, 0)},
	}}
	uc := NewReturnUseCase(returns, &testhelpers.AddressRepositoryStub{}, &testhelpers.SubscriptionRepositoryStub{})

	stats, err := uc.Stats(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Active != 1 || stats.Pending != 1 || stats.Completed != 1 || stats.ThisMonth != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
