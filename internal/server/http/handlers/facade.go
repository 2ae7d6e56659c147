package handlers

import (
	"context"
	"time"

	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/view"
	"github.com/returnhelper/returnsvc/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password string, role model.UserRole) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (string, model.UserRole, error)
}

// ProfileFacade serves account and device data.
type ProfileFacade interface {
	Profile(ctx context.Context, userID string) (*model.Profile, error)
	RegisterPushToken(ctx context.Context, userID, token string) error
}

// AddressFacade manages the user's address book.
type AddressFacade interface {
	CreateAddress(ctx context.Context, userID string, address model.Address) (*model.Address, error)
	Addresses(ctx context.Context, userID string) ([]model.Address, error)
}

// ReturnFacade encapsulates the customer-facing return operations.
type ReturnFacade interface {
	CreateReturn(ctx context.Context, userID string, input usecase.CreateReturnInput) (*model.Return, error)
	Returns(ctx context.Context, userID string, bucket view.Bucket) ([]model.Return, error)
	ReturnByID(ctx context.Context, userID, returnID string) (*model.Return, error)
	ReturnStats(ctx context.Context, userID string, now time.Time) (view.Stats, error)
	CancelReturn(ctx context.Context, userID, returnID, notes string) (*model.Return, error)
}

// PickupFacade encapsulates the driver-facing operations.
type PickupFacade interface {
	AvailablePickups(ctx context.Context) ([]model.Pickup, error)
	DriverPickups(ctx context.Context, driverID string) ([]model.Return, error)
	AcceptPickup(ctx context.Context, driverID, returnID string) (*model.Return, error)
	ReportPickupStatus(ctx context.Context, driverID, returnID string, status model.ReturnStatus, notes string) (*model.Return, error)
}

// ReturnHelperFacade aggregates the full set of operations used across handlers.
type ReturnHelperFacade interface {
	AuthFacade
	ProfileFacade
	AddressFacade
	ReturnFacade
	PickupFacade
}
