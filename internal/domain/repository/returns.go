package repository

import (
	"context"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// ReturnRepository persists return aggregates. Status mutations go through
// AppendStatusUpdate/AssignDriver only, which enforce the optimistic expected
// status at the storage level.
type ReturnRepository interface {
	Create(ctx context.Context, ret *model.Return) error
	GetByID(ctx context.Context, id string) (*model.Return, error)
	ListByUser(ctx context.Context, userID string) ([]model.Return, error)
	ListByDriver(ctx context.Context, driverID string) ([]model.Return, error)
	ListAvailablePickups(ctx context.Context) ([]model.Pickup, error)
	SelectBatchForTracking(ctx context.Context, limit int) ([]model.Return, error)
	AppendStatusUpdate(ctx context.Context, returnID string, expected model.ReturnStatus, update model.StatusUpdate) error
	AssignDriver(ctx context.Context, returnID string, expected model.ReturnStatus, driver *model.User, update model.StatusUpdate) error
}
