package test

import (
	"context"
	"fmt"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[string]*model.User
	Next    int
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[string]*model.User),
		Next:    1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	if stored.ID == "" {
		s.Next++
		stored.ID = fmt.Sprintf("user-%d", s.Next)
	}
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StatusUpdateCall records an AppendStatusUpdate invocation.
type StatusUpdateCall struct {
	ReturnID string
	Expected model.ReturnStatus
	Update   model.StatusUpdate
}

// AssignDriverCall records an AssignDriver invocation.
type AssignDriverCall struct {
	ReturnID string
	Expected model.ReturnStatus
	Driver   *model.User
	Update   model.StatusUpdate
}

// ReturnRepositoryStub allows tests to customize behaviour.
type ReturnRepositoryStub struct {
	CreateFn                 func(context.Context, *model.Return) error
	GetByIDFn                func(context.Context, string) (*model.Return, error)
	ListByUserFn             func(context.Context, string) ([]model.Return, error)
	ListByDriverFn           func(context.Context, string) ([]model.Return, error)
	ListAvailablePickupsFn   func(context.Context) ([]model.Pickup, error)
	SelectBatchForTrackingFn func(context.Context, int) ([]model.Return, error)
	AppendStatusUpdateFn     func(context.Context, string, model.ReturnStatus, model.StatusUpdate) error
	AssignDriverFn           func(context.Context, string, model.ReturnStatus, *model.User, model.StatusUpdate) error

	Created     []*model.Return
	Returns     []model.Return
	Pickups     []model.Pickup
	Tracking    []model.Return
	Updates     []StatusUpdateCall
	Assignments []AssignDriverCall
}

// Create tracks the stored aggregate.
func (s *ReturnRepositoryStub) Create(ctx context.Context, ret *model.Return) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, ret)
	}
	s.Created = append(s.Created, ret)
	return nil
}

// GetByID returns matched return either via override or stored slice.
func (s *ReturnRepositoryStub) GetByID(ctx context.Context, id string) (*model.Return, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Returns {
		if s.Returns[i].ID == id {
			ret := s.Returns[i]
			return &ret, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns returns from the configured slice.
func (s *ReturnRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Return, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Returns, nil
}

// ListByDriver returns returns assigned to the driver.
func (s *ReturnRepositoryStub) ListByDriver(ctx context.Context, driverID string) ([]model.Return, error) {
	if s.ListByDriverFn != nil {
		return s.ListByDriverFn(ctx, driverID)
	}
	return s.Returns, nil
}

// ListAvailablePickups returns the configured unclaimed pickups.
func (s *ReturnRepositoryStub) ListAvailablePickups(ctx context.Context) ([]model.Pickup, error) {
	if s.ListAvailablePickupsFn != nil {
		return s.ListAvailablePickupsFn(ctx)
	}
	return s.Pickups, nil
}

// SelectBatchForTracking returns returns queued for carrier polling.
func (s *ReturnRepositoryStub) SelectBatchForTracking(ctx context.Context, limit int) ([]model.Return, error) {
	if s.SelectBatchForTrackingFn != nil {
		return s.SelectBatchForTrackingFn(ctx, limit)
	}
	return s.Tracking, nil
}

// AppendStatusUpdate records update invocations.
func (s *ReturnRepositoryStub) AppendStatusUpdate(ctx context.Context, returnID string, expected model.ReturnStatus, update model.StatusUpdate) error {
	if s.AppendStatusUpdateFn != nil {
		return s.AppendStatusUpdateFn(ctx, returnID, expected, update)
	}
	s.Updates = append(s.Updates, StatusUpdateCall{ReturnID: returnID, Expected: expected, Update: update})
	return nil
}

// AssignDriver records assignment invocations.
func (s *ReturnRepositoryStub) AssignDriver(ctx context.Context, returnID string, expected model.ReturnStatus, driver *model.User, update model.StatusUpdate) error {
	if s.AssignDriverFn != nil {
		return s.AssignDriverFn(ctx, returnID, expected, driver, update)
	}
	s.Assignments = append(s.Assignments, AssignDriverCall{ReturnID: returnID, Expected: expected, Driver: driver, Update: update})
	return nil
}

// AddressRepositoryStub stores addresses in-memory for tests.
type AddressRepositoryStub struct {
	CreateFn func(context.Context, *model.Address) (*model.Address, error)
	Items    []model.Address
	Err      error
}

// Create stores the address and assigns a synthetic identifier.
func (s *AddressRepositoryStub) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, address)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *address
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("addr-%d", len(s.Items)+1)
	}
	s.Items = append(s.Items, stored)
	return &stored, nil
}

// GetByID fetches address by identifier or returns not found.
func (s *AddressRepositoryStub) GetByID(ctx context.Context, id string) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			address := s.Items[i]
			return &address, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns addresses owned by the user.
func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Address
	for _, a := range s.Items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// SubscriptionRepositoryStub lets tests control billing state.
type SubscriptionRepositoryStub struct {
	Subscription *model.Subscription
	Err          error
	Increments   []string
}

// GetByUser returns the configured subscription or not found.
func (s *SubscriptionRepositoryStub) GetByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Subscription == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Subscription, nil
}

// IncrementUsage records usage counter advances.
func (s *SubscriptionRepositoryStub) IncrementUsage(ctx context.Context, userID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Increments = append(s.Increments, userID)
	if s.Subscription != nil {
		s.Subscription.ReturnsUsed++
	}
	return nil
}

// PushTokenRepositoryStub stores device tokens per user.
type PushTokenRepositoryStub struct {
	Tokens map[string][]string
	Err    error
}

// Save appends the token for the user.
func (s *PushTokenRepositoryStub) Save(ctx context.Context, userID, token string) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Tokens == nil {
		s.Tokens = make(map[string][]string)
	}
	for _, existing := range s.Tokens[userID] {
		if existing == token {
			return nil
		}
	}
	s.Tokens[userID] = append(s.Tokens[userID], token)
	return nil
}

// ListByUser returns tokens stored for the user.
func (s *PushTokenRepositoryStub) ListByUser(ctx context.Context, userID string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Tokens[userID], nil
}
