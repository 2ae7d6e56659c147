package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/returnhelper/returnsvc/internal/adapter/push"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
	"github.com/returnhelper/returnsvc/internal/domain/view"
	"github.com/returnhelper/returnsvc/internal/usecase"
)

// CarrierProvider abstracts the carrier tracking client.
type CarrierProvider interface {
	Track(ctx context.Context, returnID string) (*model.TrackingEvent, error)
}

// PushSender abstracts push notification delivery.
type PushSender interface {
	Send(ctx context.Context, msg push.Message) error
}

// ReturnsFacade aggregates the application surface exposed to the HTTP layer
// and the tracking worker.
type ReturnsFacade struct {
	auth       *usecase.AuthUseCase
	returns    *usecase.ReturnUseCase
	addresses  *usecase.AddressUseCase
	pickups    *usecase.PickupUseCase
	profiles   *usecase.ProfileUseCase
	carrier    CarrierProvider
	pusher     PushSender
	pushTokens repository.PushTokenRepository
	logger     *slog.Logger
}

// NewReturnsFacade constructs the facade.
func NewReturnsFacade(
	auth *usecase.AuthUseCase,
	returns *usecase.ReturnUseCase,
	addresses *usecase.AddressUseCase,
	pickups *usecase.PickupUseCase,
	profiles *usecase.ProfileUseCase,
	carrier CarrierProvider,
	pusher PushSender,
	pushTokens repository.PushTokenRepository,
	logger *slog.Logger,
) *ReturnsFacade {
	return &ReturnsFacade{
		auth:       auth,
		returns:    returns,
		addresses:  addresses,
		pickups:    pickups,
		profiles:   profiles,
		carrier:    carrier,
		pusher:     pusher,
		pushTokens: pushTokens,
		logger:     logger,
	}
}

func (f *ReturnsFacade) Register(ctx context.Context, name, email, phone, password string, role model.UserRole) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, phone, password, role)
	return token, err
}

func (f *ReturnsFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *ReturnsFacade) ParseToken(token string) (string, model.UserRole, error) {
	return f.auth.ParseToken(token)
}

func (f *ReturnsFacade) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	return f.profiles.Profile(ctx, userID)
}

func (f *ReturnsFacade) RegisterPushToken(ctx context.Context, userID, token string) error {
	return f.pushTokens.Save(ctx, userID, token)
}

func (f *ReturnsFacade) CreateAddress(ctx context.Context, userID string, address model.Address) (*model.Address, error) {
	return f.addresses.Create(ctx, userID, address)
}

func (f *ReturnsFacade) Addresses(ctx context.Context, userID string) ([]model.Address, error) {
	return f.addresses.ListByUser(ctx, userID)
}

func (f *ReturnsFacade) CreateReturn(ctx context.Context, userID string, input usecase.CreateReturnInput) (*model.Return, error) {
	ret, err := f.returns.Create(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	// Creation may have consumed subscription capacity.
	if err := f.profiles.InvalidateProfile(ctx, userID); err != nil {
		f.logger.Warn("profile cache invalidation failed", "userID", userID, "error", err)
	}
	return ret, nil
}

func (f *ReturnsFacade) Returns(ctx context.Context, userID string, bucket view.Bucket) ([]model.Return, error) {
	return f.returns.ListByUser(ctx, userID, bucket)
}

func (f *ReturnsFacade) ReturnByID(ctx context.Context, userID, returnID string) (*model.Return, error) {
	return f.returns.Get(ctx, userID, returnID)
}

func (f *ReturnsFacade) ReturnStats(ctx context.Context, userID string, now time.Time) (view.Stats, error) {
	return f.returns.Stats(ctx, userID, now)
}

func (f *ReturnsFacade) CancelReturn(ctx context.Context, userID, returnID, notes string) (*model.Return, error) {
	ret, err := f.returns.Cancel(ctx, userID, returnID, notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f.notifyStatusChange(ctx, ret)
	return ret, nil
}

func (f *ReturnsFacade) AvailablePickups(ctx context.Context) ([]model.Pickup, error) {
	return f.pickups.Available(ctx)
}

func (f *ReturnsFacade) DriverPickups(ctx context.Context, driverID string) ([]model.Return, error) {
	return f.pickups.ListByDriver(ctx, driverID)
}

func (f *ReturnsFacade) AcceptPickup(ctx context.Context, driverID, returnID string) (*model.Return, error) {
	ret, err := f.pickups.Accept(ctx, driverID, returnID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f.notifyStatusChange(ctx, ret)
	return ret, nil
}

func (f *ReturnsFacade) ReportPickupStatus(ctx context.Context, driverID, returnID string, status model.ReturnStatus, notes string) (*model.Return, error) {
	ret, err := f.pickups.ReportStatus(ctx, driverID, returnID, status, notes, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f.notifyStatusChange(ctx, ret)
	return ret, nil
}

// ReturnsForTracking feeds the carrier poller.
func (f *ReturnsFacade) ReturnsForTracking(ctx context.Context, limit int) ([]model.Return, error) {
	return f.returns.SelectBatchForTracking(ctx, limit)
}

// TrackCarrier queries the carrier for the latest status report.
func (f *ReturnsFacade) TrackCarrier(ctx context.Context, returnID string) (*model.TrackingEvent, error) {
	return f.carrier.Track(ctx, returnID)
}

// ApplyTrackingUpdate validates and records a carrier-reported transition.
// The status the poller read is the optimistic precondition.
func (f *ReturnsFacade) ApplyTrackingUpdate(ctx context.Context, expected model.ReturnStatus, event model.TrackingEvent) error {
	update := model.StatusUpdate{Status: event.Status, Timestamp: event.Timestamp, Notes: event.Notes}
	ret, err := f.returns.ApplyExternalUpdate(ctx, event.ReturnID, update, expected)
	if err != nil {
		return err
	}
	f.notifyStatusChange(ctx, ret)
	return nil
}

// notifyStatusChange pushes the new status to the owner's devices. Delivery
// problems are logged, never propagated.
func (f *ReturnsFacade) notifyStatusChange(ctx context.Context, ret *model.Return) {
	tokens, err := f.pushTokens.ListByUser(ctx, ret.UserID)
	if err != nil {
		f.logger.Error("list push tokens failed", slog.String("return", ret.ID), slog.String("error", err.Error()))
		return
	}
	if len(tokens) == 0 {
		return
	}

	badge := view.StatusBadge(ret.Status)
	msg := push.Message{
		To:    tokens,
		Title: "Return " + badge.Label,
		Body:  view.StatusDescription(ret.Status),
		Data:  map[string]string{"returnId": ret.ID, "status": string(ret.Status)},
	}
	if err := f.pusher.Send(ctx, msg); err != nil {
		f.logger.Error("push notification failed", slog.String("return", ret.ID), slog.String("error", err.Error()))
	}
}
