package usecase

import (
	"context"
	"errors"

	"github.com/returnhelper/returnsvc/internal/cache"
	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
)

// ProfileUseCase serves the combined user/subscription view, backed by the
// profile cache for offline-friendly reads.
type ProfileUseCase struct {
	users repository.UserRepository
	subs  repository.SubscriptionRepository
	cache cache.ProfileCache
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository, subs repository.SubscriptionRepository, profiles cache.ProfileCache) *ProfileUseCase {
	return &ProfileUseCase{users: users, subs: subs, cache: profiles}
}

// Profile returns the user with their subscription. A missing subscription
// row means the free tier and yields a nil Subscription. Cache errors fall
// through to storage.
func (u *ProfileUseCase) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if cached, err := u.cache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub, err := u.subs.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	profile := &model.Profile{User: *usr, Subscription: sub}
	_ = u.cache.Set(ctx, profile)
	return profile, nil
}

// InvalidateProfile drops the cached profile so the next read reflects a
// subscription usage change.
func (u *ProfileUseCase) InvalidateProfile(ctx context.Context, userID string) error {
	return u.cache.Invalidate(ctx, userID)
}
