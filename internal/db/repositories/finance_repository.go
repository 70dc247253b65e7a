package repositories

import (
	"context"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type DonorRepository struct {
	*Collection[entities.Donor]
}

func NewDonorRepository(ctx context.Context, s store.DocumentStore) *DonorRepository {
	return &DonorRepository{
		Collection: NewCollection(ctx, s, constants.ColDonors, []entities.Donor{},
			func(d *entities.Donor) string { return d.ID },
			func(d *entities.Donor, id string) { d.ID = id },
		),
	}
}

type PaymentMethodRepository struct {
	*Collection[entities.PaymentMethod]
}

func NewPaymentMethodRepository(ctx context.Context, s store.DocumentStore) *PaymentMethodRepository {
	return &PaymentMethodRepository{
		Collection: NewCollection(ctx, s, constants.ColPaymentMethods, []entities.PaymentMethod{},
			func(p *entities.PaymentMethod) string { return p.ID },
			func(p *entities.PaymentMethod, id string) { p.ID = id },
		),
	}
}

type SubscriptionPlanRepository struct {
	*Collection[entities.SubscriptionPlan]
}

func NewSubscriptionPlanRepository(ctx context.Context, s store.DocumentStore) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{
		Collection: NewCollection(ctx, s, constants.ColSubscriptionPlans, []entities.SubscriptionPlan{},
			func(p *entities.SubscriptionPlan) string { return p.ID },
			func(p *entities.SubscriptionPlan, id string) { p.ID = id },
		),
	}
}

// ActivePlans returns plans open for new subscribers.
func (r *SubscriptionPlanRepository) ActivePlans() []entities.SubscriptionPlan {
	return r.Filter(func(p *entities.SubscriptionPlan) bool { return p.IsActive })
}

type RevenueRepository struct {
	*Collection[entities.RevenueData]
}

func NewRevenueRepository(ctx context.Context, s store.DocumentStore) *RevenueRepository {
	return &RevenueRepository{
		Collection: NewCollection(ctx, s, constants.ColRevenueData, []entities.RevenueData{},
			func(r *entities.RevenueData) string { return r.ID },
			func(r *entities.RevenueData, id string) { r.ID = id },
		),
	}
}

// ForMonth returns the revenue record for a YYYY-MM month.
func (r *RevenueRepository) ForMonth(month string) (entities.RevenueData, bool) {
	matches := r.Filter(func(rd *entities.RevenueData) bool { return rd.Month == month })
	if len(matches) == 0 {
		return entities.RevenueData{}, false
	}
	return matches[0], true
}

// Accrue adds the given amounts to the month's record, creating it on
// first use.
func (r *RevenueRepository) Accrue(ctx context.Context, month string, ads, donations, subscriptions float64) (entities.RevenueData, error) {
	existing, ok := r.ForMonth(month)
	if !ok {
		return r.Add(ctx, entities.RevenueData{
			Month:                month,
			AdsRevenue:           ads,
			DonationsRevenue:     donations,
			SubscriptionsRevenue: subscriptions,
		})
	}

	updated, _, err := r.Mutate(ctx, existing.ID, func(rd *entities.RevenueData) {
		rd.AdsRevenue += ads
		rd.DonationsRevenue += donations
		rd.SubscriptionsRevenue += subscriptions
	})
	return updated, err
}

type ModeratorPayoutRepository struct {
	*Collection[entities.ModeratorPayout]
}

func NewModeratorPayoutRepository(ctx context.Context, s store.DocumentStore) *ModeratorPayoutRepository {
	return &ModeratorPayoutRepository{
		Collection: NewCollection(ctx, s, constants.ColModeratorPayouts, []entities.ModeratorPayout{},
			func(p *entities.ModeratorPayout) string { return p.ID },
			func(p *entities.ModeratorPayout, id string) { p.ID = id },
		),
	}
}

// ForMonth returns all payout rows for a month.
func (r *ModeratorPayoutRepository) ForMonth(month string) []entities.ModeratorPayout {
	return r.Filter(func(p *entities.ModeratorPayout) bool { return p.Month == month })
}

// ReplaceForMonth discards prior rows for the month and installs rows in
// one persisted write.
func (r *ModeratorPayoutRepository) ReplaceForMonth(ctx context.Context, month string, rows []entities.ModeratorPayout) error {
	return r.ReplaceWhere(ctx, func(p *entities.ModeratorPayout) bool { return p.Month == month }, rows)
}

type UserRewardRepository struct {
	*Collection[entities.UserReward]
}

func NewUserRewardRepository(ctx context.Context, s store.DocumentStore) *UserRewardRepository {
	return &UserRewardRepository{
		Collection: NewCollection(ctx, s, constants.ColUserRewards, []entities.UserReward{},
			func(p *entities.UserReward) string { return p.ID },
			func(p *entities.UserReward, id string) { p.ID = id },
		),
	}
}

// ForPeriod returns all reward rows for a (year, half) period.
func (r *UserRewardRepository) ForPeriod(year int, half string) []entities.UserReward {
	return r.Filter(func(p *entities.UserReward) bool { return p.Year == year && p.Half == half })
}

// ReplaceForPeriod discards prior rows for the period and installs rows in
// one persisted write.
func (r *UserRewardRepository) ReplaceForPeriod(ctx context.Context, year int, half string, rows []entities.UserReward) error {
	return r.ReplaceWhere(ctx, func(p *entities.UserReward) bool { return p.Year == year && p.Half == half }, rows)
}
