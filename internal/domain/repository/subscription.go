package repository

import (
	"context"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// SubscriptionRepository reads billing state. Plans are owned by the billing
// subsystem; this service only advances the usage counter.
type SubscriptionRepository interface {
	GetByUser(ctx context.Context, userID string) (*model.Subscription, error)
	IncrementUsage(ctx context.Context, userID string) error
}
