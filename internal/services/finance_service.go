package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

// FinanceService records donations and raw revenue entries.
type FinanceService struct {
	donors  *repositories.DonorRepository
	revenue *repositories.RevenueRepository
	now     func() time.Time
}

func NewFinanceService(donors *repositories.DonorRepository, revenue *repositories.RevenueRepository) *FinanceService {
	return &FinanceService{
		donors:  donors,
		revenue: revenue,
		now:     time.Now,
	}
}

// RecordDonation stores the donor entry and accrues the amount into the
// current month's donation revenue.
func (s *FinanceService) RecordDonation(ctx context.Context, name, email, message string, amount float64) (entities.Donor, error) {
	if amount <= 0 {
		return entities.Donor{}, fmt.Errorf("donation amount must be positive, got %v", amount)
	}

	donor, err := s.donors.Add(ctx, entities.Donor{
		Name:    name,
		Email:   email,
		Amount:  amount,
		Message: message,
		Date:    s.now(),
	})
	if err != nil {
		return entities.Donor{}, fmt.Errorf("failed to store donor: %w", err)
	}

	month := s.now().Format("2006-01")
	if _, err := s.revenue.Accrue(ctx, month, 0, amount, 0); err != nil {
		return donor, fmt.Errorf("failed to record donation revenue: %w", err)
	}
	return donor, nil
}

// AddRevenue accrues amounts into a month's revenue record, creating it on
// first use.
func (s *FinanceService) AddRevenue(ctx context.Context, month string, ads, donations, subscriptions float64) (entities.RevenueData, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return entities.RevenueData{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return s.revenue.Accrue(ctx, month, ads, donations, subscriptions)
}
