package dto

import "github.com/returnhelper/returnsvc/internal/domain/model"

// CreateAddressRequest describes POST /api/addresses input.
type CreateAddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	IsDefault bool   `json:"isDefault"`
}

// ToAddressModel maps the payload onto the domain type.
func (r CreateAddressRequest) ToAddressModel() model.Address {
	return model.Address{
		Label:     r.Label,
		Street:    r.Street,
		Apartment: r.Apartment,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		IsDefault: r.IsDefault,
	}
}
