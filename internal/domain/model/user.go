package model

import (
	"fmt"
	"time"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
)

// UserRole distinguishes customer and driver facing functionality.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleDriver   UserRole = "DRIVER"
	RoleAdmin    UserRole = "ADMIN"
)

// ParseUserRole validates a raw role value.
func ParseUserRole(raw string) (UserRole, error) {
	switch UserRole(raw) {
	case RoleCustomer, RoleDriver, RoleAdmin:
		return UserRole(raw), nil
	}
	return "", fmt.Errorf("%w: unknown user role %q", domainErrors.ErrMalformedInput, raw)
}

// User describes a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the read view served to the client and cached for offline display.
type Profile struct {
	User         User
	Subscription *Subscription
}
