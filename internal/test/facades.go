package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/returnhelper/returnsvc/internal/adapter/push"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/view"
	"github.com/returnhelper/returnsvc/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string, model.UserRole) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, model.UserRole, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, phone, password string, role model.UserRole) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, phone, password, role)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns stored identity for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (string, model.UserRole, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "user-1", model.RoleCustomer, nil
}

// ProfileFacadeStub serves account data for handler tests.
type ProfileFacadeStub struct {
	ProfileFn   func(context.Context, string) (*model.Profile, error)
	PushTokenFn func(context.Context, string, string) error
}

// Profile returns the configured profile or a default customer.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.Profile{User: model.User{ID: userID, Name: "Test User", Email: "test@example.com", Role: model.RoleCustomer}}, nil
}

// RegisterPushToken executes the configured handler.
func (s ProfileFacadeStub) RegisterPushToken(ctx context.Context, userID, token string) error {
	if s.PushTokenFn != nil {
		return s.PushTokenFn(ctx, userID, token)
	}
	return nil
}

// AddressFacadeStub simulates address book operations.
type AddressFacadeStub struct {
	CreateFn func(context.Context, string, model.Address) (*model.Address, error)
	ListFn   func(context.Context, string) ([]model.Address, error)
}

// CreateAddress delegates to the override or echoes the input.
func (s AddressFacadeStub) CreateAddress(ctx context.Context, userID string, address model.Address) (*model.Address, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, address)
	}
	address.ID = "addr-1"
	address.UserID = userID
	return &address, nil
}

// Addresses returns preconfigured address book entries.
func (s AddressFacadeStub) Addresses(ctx context.Context, userID string) ([]model.Address, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Address{{ID: "addr-1", UserID: userID, Label: "Home", Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"}}, nil
}

// ReturnFacadeStub provides controllable behaviour for return endpoints.
type ReturnFacadeStub struct {
	CreateFn func(context.Context, string, usecase.CreateReturnInput) (*model.Return, error)
	ListFn   func(context.Context, string, view.Bucket) ([]model.Return, error)
	GetFn    func(context.Context, string, string) (*model.Return, error)
	StatsFn  func(context.Context, string, time.Time) (view.Stats, error)
	CancelFn func(context.Context, string, string, string) (*model.Return, error)
}

// CreateReturn delegates to the override or returns a default pending return.
func (s ReturnFacadeStub) CreateReturn(ctx context.Context, userID string, input usecase.CreateReturnInput) (*model.Return, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, input)
	}
	return &model.Return{ID: "ret-1", UserID: userID, Status: model.StatusPending}, nil
}

// Returns lists preconfigured returns for the user.
func (s ReturnFacadeStub) Returns(ctx context.Context, userID string, bucket view.Bucket) ([]model.Return, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, bucket)
	}
	return []model.Return{{ID: "ret-1", UserID: userID, Status: model.StatusPending}}, nil
}

// ReturnByID returns the configured return.
func (s ReturnFacadeStub) ReturnByID(ctx context.Context, userID, returnID string) (*model.Return, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, returnID)
	}
	return &model.Return{ID: returnID, UserID: userID, Status: model.StatusPending}, nil
}

// ReturnStats returns configured counters.
func (s ReturnFacadeStub) ReturnStats(ctx context.Context, userID string, now time.Time) (view.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, userID, now)
	}
	return view.Stats{}, nil
}

// CancelReturn executes the configured cancellation handler.
func (s ReturnFacadeStub) CancelReturn(ctx context.Context, userID, returnID, notes string) (*model.Return, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, returnID, notes)
	}
	return &model.Return{ID: returnID, UserID: userID, Status: model.StatusCancelled}, nil
}

// PickupFacadeStub simulates driver operations.
type PickupFacadeStub struct {
	AvailableFn func(context.Context) ([]model.Pickup, error)
	MineFn      func(context.Context, string) ([]model.Return, error)
	AcceptFn    func(context.Context, string, string) (*model.Return, error)
	ReportFn    func(context.Context, string, string, model.ReturnStatus, string) (*model.Return, error)
}

// AvailablePickups returns preconfigured unclaimed pickups.
func (s PickupFacadeStub) AvailablePickups(ctx context.Context) ([]model.Pickup, error) {
	if s.AvailableFn != nil {
		return s.AvailableFn(ctx)
	}
	return []model.Pickup{{ID: "ret-1", CustomerName: "Test User", Status: model.StatusScheduled}}, nil
}

// DriverPickups returns the driver's accepted pickups.
func (s PickupFacadeStub) DriverPickups(ctx context.Context, driverID string) ([]model.Return, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, driverID)
	}
	return []model.Return{{ID: "ret-1", DriverID: driverID, Status: model.StatusDriverAssigned}}, nil
}

// AcceptPickup executes the configured handler.
func (s PickupFacadeStub) AcceptPickup(ctx context.Context, driverID, returnID string) (*model.Return, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, driverID, returnID)
	}
	return &model.Return{ID: returnID, DriverID: driverID, Status: model.StatusDriverAssigned}, nil
}

// ReportPickupStatus executes the configured handler.
func (s PickupFacadeStub) ReportPickupStatus(ctx context.Context, driverID, returnID string, status model.ReturnStatus, notes string) (*model.Return, error) {
	if s.ReportFn != nil {
		return s.ReportFn(ctx, driverID, returnID, status, notes)
	}
	return &model.Return{ID: returnID, DriverID: driverID, Status: status}, nil
}

// ReturnHelperFacadeStub aggregates facade dependencies for HTTP layer tests.
type ReturnHelperFacadeStub struct {
	AuthFacadeStub
	ProfileFacadeStub
	AddressFacadeStub
	ReturnFacadeStub
	PickupFacadeStub
}

// TrackingUpdateCall stores information about ApplyTrackingUpdate invocations.
type TrackingUpdateCall struct {
	Expected model.ReturnStatus
	Event    model.TrackingEvent
}

// TrackerFacadeStub mimics worker interactions with the application facade.
type TrackerFacadeStub struct {
	Batches        [][]model.Return
	BatchesFn      func(context.Context, int) ([]model.Return, error)
	TrackFn        func(context.Context, string) (*model.TrackingEvent, error)
	ApplyFn        func(context.Context, model.ReturnStatus, model.TrackingEvent) error
	Applied        []TrackingUpdateCall
	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *TrackerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *TrackerFacadeStub) Unlock() { s.mu.Unlock() }

// ReturnsForTracking returns batches from configured queue.
func (s *TrackerFacadeStub) ReturnsForTracking(ctx context.Context, limit int) ([]model.Return, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// TrackCarrier returns configured tracking data.
func (s *TrackerFacadeStub) TrackCarrier(ctx context.Context, returnID string) (*model.TrackingEvent, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, returnID)
	}
	return &model.TrackingEvent{ReturnID: returnID, Status: model.StatusInTransit, Timestamp: time.Unix(0, 0)}, nil
}

// ApplyTrackingUpdate records update requests.
func (s *TrackerFacadeStub) ApplyTrackingUpdate(ctx context.Context, expected model.ReturnStatus, event model.TrackingEvent) error {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, expected, event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, TrackingUpdateCall{Expected: expected, Event: event})
	return nil
}

// CarrierProviderStub fetches tracking information for tests.
type CarrierProviderStub struct {
	TrackFn func(context.Context, string) (*model.TrackingEvent, error)
	Event   *model.TrackingEvent
	Err     error
}

// Track returns configured response or a default in-transit report.
func (s CarrierProviderStub) Track(ctx context.Context, returnID string) (*model.TrackingEvent, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, returnID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Event != nil {
		return s.Event, nil
	}
	return &model.TrackingEvent{ReturnID: returnID, Status: model.StatusInTransit}, nil
}

// PushSenderStub records outbound push messages.
type PushSenderStub struct {
	SendFn func(context.Context, push.Message) error
	Sent   []push.Message
	Err    error
	mu     sync.Mutex
}

// Send records the message or delegates to the override.
func (s *PushSenderStub) Send(ctx context.Context, msg push.Message) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a copy of recorded push messages.
func (s *PushSenderStub) Messages() []push.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]push.Message, len(s.Sent))
	copy(out, s.Sent)
	return out
}
