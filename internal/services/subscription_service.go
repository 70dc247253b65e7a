package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

// SubscriptionService manages user subscriptions and records their revenue.
type SubscriptionService struct {
	users   *repositories.UserRepository
	plans   *repositories.SubscriptionPlanRepository
	revenue *repositories.RevenueRepository
	now     func() time.Time
}

func NewSubscriptionService(
	users *repositories.UserRepository,
	plans *repositories.SubscriptionPlanRepository,
	revenue *repositories.RevenueRepository,
) *SubscriptionService {
	return &SubscriptionService{
		users:   users,
		plans:   plans,
		revenue: revenue,
		now:     time.Now,
	}
}

// Subscribe sets the user's subscription status to the plan code and
// accrues the plan price into the current month's subscription revenue.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, planID string) (entities.User, error) {
	plan, ok := s.plans.Get(planID)
	if !ok {
		return entities.User{}, constants.ErrNotFound
	}
	if !plan.IsActive {
		return entities.User{}, constants.ErrPlanInactive
	}

	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		u.SubscriptionStatus = plan.Code
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}

	month := s.now().Format("2006-01")
	if _, err := s.revenue.Accrue(ctx, month, 0, 0, plan.PriceMonthly); err != nil {
		return user, fmt.Errorf("failed to record subscription revenue: %w", err)
	}
	return user, nil
}

// Cancel returns the user to non-subscriber status.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) (entities.User, error) {
	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		u.SubscriptionStatus = constants.SubscriptionNone
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}
	return user, nil
}
