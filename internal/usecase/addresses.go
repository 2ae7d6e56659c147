package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
)

// AddressUseCase manages the user's address book.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// Create validates and stores a new pickup address.
func (u *AddressUseCase) Create(ctx context.Context, userID string, address model.Address) (*model.Address, error) {
	address.UserID = userID
	address.Label = strings.TrimSpace(address.Label)
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.ZipCode = strings.TrimSpace(address.ZipCode)

	if address.Label == "" || address.Street == "" || address.City == "" || address.State == "" {
		return nil, fmt.Errorf("%w: address requires label, street, city and state", domainErrors.ErrMalformedInput)
	}
	if !ValidateZipCode(address.ZipCode) {
		return nil, fmt.Errorf("%w: invalid zip code %q", domainErrors.ErrMalformedInput, address.ZipCode)
	}

	return u.addresses.Create(ctx, &address)
}

// ListByUser returns the address book, default address first.
func (u *AddressUseCase) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}
