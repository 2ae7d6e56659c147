package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/lifecycle"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
	"github.com/returnhelper/returnsvc/internal/domain/view"
)

// NewItemInput describes one item in a creation request.
type NewItemInput struct {
	Retailer    string
	ProductName string
	QRCode      string
	Size        model.ItemSize
	Fragile     bool
}

// CreateReturnInput carries everything the scheduling flow collected.
type CreateReturnInput struct {
	InitialStatus       model.ReturnStatus
	ScheduledDate       time.Time
	TimeWindow          string
	AddressID           string
	Items               []NewItemInput
	SpecialInstructions string
}

// ReturnUseCase owns the return aggregate lifecycle.
type ReturnUseCase struct {
	returns   repository.ReturnRepository
	addresses repository.AddressRepository
	subs      repository.SubscriptionRepository
}

// NewReturnUseCase constructs ReturnUseCase.
func NewReturnUseCase(returns repository.ReturnRepository, addresses repository.AddressRepository, subs repository.SubscriptionRepository) *ReturnUseCase {
	return &ReturnUseCase{returns: returns, addresses: addresses, subs: subs}
}

// Create schedules a new return. The pickup address is snapshotted into the
// aggregate so later address-book edits never rewrite history.
func (u *ReturnUseCase) Create(ctx context.Context, userID string, input CreateReturnInput) (*model.Return, error) {
	sub, err := u.subs.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if !sub.HasCapacity() {
		return nil, domainErrors.ErrReturnLimitReached
	}

	address, err := u.addresses.GetByID(ctx, input.AddressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	items := make([]model.ReturnItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, model.ReturnItem{
			ID:          uuid.NewString(),
			Retailer:    item.Retailer,
			ProductName: item.ProductName,
			QRCode:      item.QRCode,
			Size:        item.Size,
			Fragile:     item.Fragile,
		})
	}

	ret, err := lifecycle.NewReturn(
		uuid.NewString(), userID, input.InitialStatus,
		input.ScheduledDate, input.TimeWindow,
		items, *address, input.SpecialInstructions,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err := u.returns.Create(ctx, ret); err != nil {
		return nil, err
	}

	if sub != nil {
		if err := u.subs.IncrementUsage(ctx, userID); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Get fetches one return owned by the user.
func (u *ReturnUseCase) Get(ctx context.Context, userID, returnID string) (*model.Return, error) {
	ret, err := u.returns.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if ret.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return ret, nil
}

// ListByUser returns the user's history filtered by bucket, newest first.
func (u *ReturnUseCase) ListByUser(ctx context.Context, userID string, bucket view.Bucket) ([]model.Return, error) {
	returns, err := u.returns.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return view.FilterByBucket(returns, bucket), nil
}

// Stats computes the dashboard counters at the given instant.
func (u *ReturnUseCase) Stats(ctx context.Context, userID string, now time.Time) (view.Stats, error) {
	returns, err := u.returns.ListByUser(ctx, userID)
	if err != nil {
		return view.Stats{}, err
	}
	return view.AggregateStats(returns, now), nil
}

// Cancel applies the customer-facing cancellation policy and, if allowed,
// records the CANCELLED transition.
func (u *ReturnUseCase) Cancel(ctx context.Context, userID, returnID, notes string, now time.Time) (*model.Return, error) {
	ret, err := u.Get(ctx, userID, returnID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanCancel(ret.Status) {
		return nil, domainErrors.ErrCancellationNotAllowed
	}

	update := model.StatusUpdate{Status: model.StatusCancelled, Timestamp: now, Notes: notes}
	return u.apply(ctx, ret, update)
}

// ApplyExternalUpdate is the single entry point for status reports arriving
// from outside (carrier polls, driver actions, push-triggered refetches). The
// transition is validated before anything is persisted; the caller's view of
// the current status is the optimistic precondition.
func (u *ReturnUseCase) ApplyExternalUpdate(ctx context.Context, returnID string, update model.StatusUpdate, expected model.ReturnStatus) (*model.Return, error) {
	ret, err := u.returns.GetByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	return u.applyExpected(ctx, ret, update, expected)
}

// SelectBatchForTracking returns aggregates the carrier poller should check.
func (u *ReturnUseCase) SelectBatchForTracking(ctx context.Context, limit int) ([]model.Return, error) {
	return u.returns.SelectBatchForTracking(ctx, limit)
}

func (u *ReturnUseCase) apply(ctx context.Context, ret *model.Return, update model.StatusUpdate) (*model.Return, error) {
	return u.applyExpected(ctx, ret, update, ret.Status)
}

func (u *ReturnUseCase) applyExpected(ctx context.Context, ret *model.Return, update model.StatusUpdate, expected model.ReturnStatus) (*model.Return, error) {
	if err := lifecycle.Apply(ret, update, expected); err != nil {
		return nil, err
	}
	if err := u.returns.AppendStatusUpdate(ctx, ret.ID, expected, ret.StatusUpdates[len(ret.StatusUpdates)-1]); err != nil {
		return nil, err
	}
	return ret, nil
}
