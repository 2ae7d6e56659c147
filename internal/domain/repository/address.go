package repository

import (
	"context"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// AddressRepository persists the user's address book.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	GetByID(ctx context.Context, id string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string) ([]model.Address, error)
}
