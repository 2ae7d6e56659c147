package usecase

import (
	"context"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/lifecycle"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
)

// PickupUseCase covers the driver side of fulfillment.
type PickupUseCase struct {
	returns repository.ReturnRepository
	users   repository.UserRepository
}

// NewPickupUseCase constructs PickupUseCase.
func NewPickupUseCase(returns repository.ReturnRepository, users repository.UserRepository) *PickupUseCase {
	return &PickupUseCase{returns: returns, users: users}
}

// Available lists scheduled pickups not yet claimed by a driver.
func (u *PickupUseCase) Available(ctx context.Context) ([]model.Pickup, error) {
	return u.returns.ListAvailablePickups(ctx)
}

// ListByDriver returns pickups the driver has accepted.
func (u *PickupUseCase) ListByDriver(ctx context.Context, driverID string) ([]model.Return, error) {
	return u.returns.ListByDriver(ctx, driverID)
}

// Accept claims a scheduled pickup for the driver. The SCHEDULED precondition
// makes a double accept surface as Conflict rather than silently reassigning.
func (u *PickupUseCase) Accept(ctx context.Context, driverID, returnID string, now time.Time) (*model.Return, error) {
	driver, err := u.users.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Role != model.RoleDriver {
		return nil, domainErrors.ErrNotFound
	}

	update := model.StatusUpdate{Status: model.StatusDriverAssigned, Timestamp: now}
	if err := u.returns.AssignDriver(ctx, returnID, model.StatusScheduled, driver, update); err != nil {
		return nil, err
	}
	return u.returns.GetByID(ctx, returnID)
}

// ReportStatus records a driver-reported transition for a pickup assigned to
// the driver. The transition is validated before persisting.
func (u *PickupUseCase) ReportStatus(ctx context.Context, driverID, returnID string, status model.ReturnStatus, notes string, now time.Time) (*model.Return, error) {
	ret, err := u.returns.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret.DriverID != driverID {
		return nil, domainErrors.ErrNotFound
	}

	update := model.StatusUpdate{Status: status, Timestamp: now, Notes: notes}
	expected := ret.Status
	if err := lifecycle.Apply(ret, update, expected); err != nil {
		return nil, err
	}
	if err := u.returns.AppendStatusUpdate(ctx, ret.ID, expected, ret.StatusUpdates[len(ret.StatusUpdates)-1]); err != nil {
		return nil, err
	}
	return ret, nil
}
