package usecase_test

import (
	"context"
	"testing"

	"github.com/returnhelper/returnsvc/internal/domain/model"
	testhelpers "github.com/returnhelper/returnsvc/internal/test"
	. "github.com/returnhelper/returnsvc/internal/usecase"
)

type profileCacheStub struct {
	Cached        *model.Profile
	Stored        []*model.Profile
	Invalidated   []string
	GetErr        error
	InvalidateErr error
}

func (s *profileCacheStub) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.Cached, nil
}

func (s *profileCacheStub) Set(ctx context.Context, profile *model.Profile) error {
	s.Stored = append(s.Stored, profile)
	return nil
}

func (s *profileCacheStub) Invalidate(ctx context.Context, userID string) error {
	if s.InvalidateErr != nil {
		return s.InvalidateErr
	}
	s.Invalidated = append(s.Invalidated, userID)
	return nil
}

func TestProfileServedFromCache(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Err = context.DeadlineExceeded // storage must not be touched on a hit
	cached := &model.Profile{User: model.User{ID: "user-1", Name: "Cached User"}}
	uc := NewProfileUseCase(users, &testhelpers.SubscriptionRepositoryStub{}, &profileCacheStub{Cached: cached})

	profile, err := uc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.User.Name != "Cached User" {
		t.Fatalf("expected cached profile, got %+v", profile)
	}
}

func TestProfileFallsThroughOnMiss(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID["user-1"] = &model.User{ID: "user-1", Name: "Stored User", Role: model.RoleCustomer}
	subs := &testhelpers.SubscriptionRepositoryStub{Subscription: &model.Subscription{
		UserID: "user-1", Plan: model.PlanUnlimited, ReturnsLimit: model.UnlimitedReturns,
	}}
	cache := &profileCacheStub{}
	uc := NewProfileUseCase(users, subs, cache)

	profile, err := uc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.User.Name != "Stored User" {
		t.Fatalf("expected stored user, got %+v", profile.User)
	}
	if profile.Subscription == nil || profile.Subscription.Plan != model.PlanUnlimited {
		t.Fatalf("expected subscription attached, got %+v", profile.Subscription)
	}
	if len(cache.Stored) != 1 {
		t.Fatalf("expected profile written back to cache, got %d", len(cache.Stored))
	}
}

func TestProfileMissingSubscriptionMeansFreeTier(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID["user-1"] = &model.User{ID: "user-1", Role: model.RoleCustomer}
	uc := NewProfileUseCase(users, &testhelpers.SubscriptionRepositoryStub{}, &profileCacheStub{})

	profile, err := uc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Subscription != nil {
		t.Fatalf("expected nil subscription for free tier, got %+v", profile.Subscription)
	}
}

func TestProfileCacheErrorFallsThrough(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID["user-1"] = &model.User{ID: "user-1", Role: model.RoleCustomer}
	uc := NewProfileUseCase(users, &testhelpers.SubscriptionRepositoryStub{}, &profileCacheStub{GetErr: context.DeadlineExceeded})

	profile, err := uc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("cache failure must not fail the read, got %v", err)
	}
	if profile.User.ID != "user-1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestInvalidateProfile(t *testing.T) {
	cache := &profileCacheStub{}
	uc := NewProfileUseCase(testhelpers.NewUserRepositoryStub(), &testhelpers.SubscriptionRepositoryStub{}, cache)

	if err := uc.InvalidateProfile(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.Invalidated) != 1 || cache.Invalidated[0] != "user-1" {
		t.Fatalf("expected cache drop for user-1, got %v", cache.Invalidated)
	}

	cache.InvalidateErr = context.DeadlineExceeded
	if err := uc.InvalidateProfile(context.Background(), "user-1"); err != context.DeadlineExceeded {
		t.Fatalf("expected cache error surfaced, got %v", err)
	}
}
