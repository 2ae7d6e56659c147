package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	testhelpers "github.com/returnhelper/returnsvc/internal/test"
	. "github.com/returnhelper/returnsvc/internal/usecase"
)

func driverUsers() *testhelpers.UserRepositoryStub {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID["driver-1"] = &model.User{ID: "driver-1", Name: "Pat Driver", Phone: "555-0101", Role: model.RoleDriver}
	users.ByID["customer-1"] = &model.User{ID: "customer-1", Name: "Some Customer", Role: model.RoleCustomer}
	return users
}

func TestAcceptAssignsDriver(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", Status: model.StatusScheduled},
	}}
	uc := NewPickupUseCase(returns, driverUsers())

	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	if _, err := uc.Accept(context.Background(), "driver-1", "ret-1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returns.Assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(returns.Assignments))
	}
	assignment := returns.Assignments[0]
	if assignment.Expected != model.StatusScheduled {
		t.Fatalf("expected SCHEDULED precondition, got %s", assignment.Expected)
	}
	if assignment.Driver.ID != "driver-1" {
		t.Fatalf("unexpected driver: %+v", assignment.Driver)
	}
	if assignment.Update.Status != model.StatusDriverAssigned || !assignment.Update.Timestamp.Equal(now) {
		t.Fatalf("unexpected update: %+v", assignment.Update)
	}
}

func TestAcceptRejectsNonDriver(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{}
	uc := NewPickupUseCase(returns, driverUsers())

	if _, err := uc.Accept(context.Background(), "customer-1", "ret-1", time.Now()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for non-driver, got %v", err)
	}
	if len(returns.Assignments) != 0 {
		t.Fatal("no assignment must be recorded")
	}
}

func TestAcceptSurfacesAssignmentConflict(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{
		AssignDriverFn: func(context.Context, string, model.ReturnStatus, *model.User, model.StatusUpdate) error {
			return domainErrors.ErrConflict
		},
	}
	uc := NewPickupUseCase(returns, driverUsers())

	if _, err := uc.Accept(context.Background(), "driver-1", "ret-1", time.Now()); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for double accept, got %v", err)
	}
}

func TestReportStatusAdvancesAssignedPickup(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", DriverID: "driver-1", Status: model.StatusDriverAssigned},
	}}
	uc := NewPickupUseCase(returns, driverUsers())

	ret, err := uc.ReportStatus(context.Background(), "driver-1", "ret-1", model.StatusPickedUp, "all items collected", time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.Status != model.StatusPickedUp {
		t.Fatalf("expected PICKED_UP, got %s", ret.Status)
	}
	if len(returns.Updates) != 1 || returns.Updates[0].Expected != model.StatusDriverAssigned {
		t.Fatalf("unexpected persisted update: %+v", returns.Updates)
	}
}

func TestReportStatusRejectsForeignDriver(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", DriverID: "driver-1", Status: model.StatusDriverAssigned},
	}}
	uc := NewPickupUseCase(returns, driverUsers())

	if _, err := uc.ReportStatus(context.Background(), "driver-2", "ret-1", model.StatusPickedUp, "", time.Now()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign driver, got %v", err)
	}
}

func TestReportStatusRejectsIllegalTransition(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Returns: []model.Return{
		{ID: "ret-1", UserID: "user-1", DriverID: "driver-1", Status: model.StatusDriverAssigned},
	}}
	uc := NewPickupUseCase(returns, driverUsers())

	_, err := uc.ReportStatus(context.Background(), "driver-1", "ret-1", model.StatusCompleted, "", time.Now())
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if len(returns.Updates) != 0 {
		t.Fatal("rejected transition must not be persisted")
	}
}

func TestAvailableDelegates(t *testing.T) {
	returns := &testhelpers.ReturnRepositoryStub{Pickups: []model.Pickup{
		{ID: "ret-1", CustomerName: "Some Customer", Status: model.StatusScheduled},
	}}
	uc := NewPickupUseCase(returns, driverUsers())

	pickups, err := uc.Available(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pickups) != 1 || pickups[0].CustomerName != "Some Customer" {
		t.Fatalf("unexpected pickups: %+v", pickups)
	}
}
