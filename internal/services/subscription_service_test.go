package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

func newSubscriptionFixture(t *testing.T, now time.Time) (*SubscriptionService, *repositories.UserRepository, *repositories.SubscriptionPlanRepository, *repositories.RevenueRepository) {
	t.Helper()

	docs := newTestStore(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(ctx, docs)
	plans := repositories.NewSubscriptionPlanRepository(ctx, docs)
	revenue := repositories.NewRevenueRepository(ctx, docs)

	svc := NewSubscriptionService(users, plans, revenue)
	svc.now = fixedClock(now)
	return svc, users, plans, revenue
}

func TestSubscribe_AccruesRevenue(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	svc, users, plans, revenue := newSubscriptionFixture(t, now)
	ctx := context.Background()

	plan, err := plans.Add(ctx, entities.SubscriptionPlan{
		Code:         "supporter",
		Name:         "Supporter",
		PriceMonthly: 9.99,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("Failed to add plan: %v", err)
	}
	user := addUser(t, users, constants.RoleUser, "u@example.com")

	got, err := svc.Subscribe(ctx, user.ID, plan.ID)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if got.SubscriptionStatus != "supporter" {
		t.Errorf("Expected supporter status, got %s", got.SubscriptionStatus)
	}
	if !got.IsSubscriber() {
		t.Error("Expected subscriber")
	}

	rev, ok := revenue.ForMonth("2026-08")
	if !ok || rev.SubscriptionsRevenue != 9.99 {
		t.Errorf("Expected 9.99 subscription revenue, got %+v", rev)
	}
}

func TestSubscribe_InactivePlan(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	svc, users, plans, _ := newSubscriptionFixture(t, now)
	ctx := context.Background()

	plan, _ := plans.Add(ctx, entities.SubscriptionPlan{Code: "retired", IsActive: false})
	user := addUser(t, users, constants.RoleUser, "u@example.com")

	if _, err := svc.Subscribe(ctx, user.ID, plan.ID); !errors.Is(err, constants.ErrPlanInactive) {
		t.Errorf("Expected ErrPlanInactive, got %v", err)
	}
}

func TestSubscribe_UnknownPlanOrUser(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	svc, users, plans, _ := newSubscriptionFixture(t, now)
	ctx := context.Background()

	user := addUser(t, users, constants.RoleUser, "u@example.com")
	if _, err := svc.Subscribe(ctx, user.ID, "missing"); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for plan, got %v", err)
	}

	plan, _ := plans.Add(ctx, entities.SubscriptionPlan{Code: "supporter", IsActive: true})
	if _, err := svc.Subscribe(ctx, "missing", plan.ID); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for user, got %v", err)
	}
}

func TestCancelSubscription(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	svc, users, plans, _ := newSubscriptionFixture(t, now)
	ctx := context.Background()

	plan, _ := plans.Add(ctx, entities.SubscriptionPlan{Code: "supporter", PriceMonthly: 5, IsActive: true})
	user := addUser(t, users, constants.RoleUser, "u@example.com")
	if _, err := svc.Subscribe(ctx, user.ID, plan.ID); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	got, err := svc.Cancel(ctx, user.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if got.IsSubscriber() {
		t.Errorf("Expected non-subscriber after cancel, got %s", got.SubscriptionStatus)
	}
}
