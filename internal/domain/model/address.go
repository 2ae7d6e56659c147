package model

// Address is a pickup location from the user's address book.
type Address struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	IsDefault bool   `json:"isDefault"`
}
