package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/models/dtos"
	"khola-chithi/engine/internal/models/entities"
)

// PayoutService turns accumulated points and recorded revenue into
// per-moderator and per-user monetary amounts. Both calculations are
// idempotent-by-replacement: prior rows for the period are discarded, never
// accumulated.
type PayoutService struct {
	users    *repositories.UserRepository
	revenue  *repositories.RevenueRepository
	payouts  *repositories.ModeratorPayoutRepository
	rewards  *repositories.UserRewardRepository
	settings *repositories.SettingsRepository
	now      func() time.Time
}

func NewPayoutService(
	users *repositories.UserRepository,
	revenue *repositories.RevenueRepository,
	payouts *repositories.ModeratorPayoutRepository,
	rewards *repositories.UserRewardRepository,
	settings *repositories.SettingsRepository,
) *PayoutService {
	return &PayoutService{
		users:    users,
		revenue:  revenue,
		payouts:  payouts,
		rewards:  rewards,
		settings: settings,
		now:      time.Now,
	}
}

// CalculateAndSetModeratorPayouts distributes the month's moderator share
// pool by performance points. Only moderators with a bucket for the month
// participate; zero total points aborts with ErrNoActivity and no mutation.
func (s *PayoutService) CalculateAndSetModeratorPayouts(ctx context.Context, month string) (*dtos.PayoutReport, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	rev, _ := s.revenue.ForMonth(month)
	pool := rev.Total() * s.settings.Get().ModeratorShareRatio

	type participant struct {
		id     string
		points int
	}
	var participants []participant
	totalPoints := 0
	for _, mod := range s.users.Moderators() {
		points, ok := mod.PerformanceFor(month)
		if !ok {
			continue
		}
		participants = append(participants, participant{id: mod.ID, points: points})
		totalPoints += points
	}

	if totalPoints == 0 {
		return nil, constants.ErrNoActivity
	}

	generatedAt := s.now()
	rows := make([]entities.ModeratorPayout, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, entities.ModeratorPayout{
			Month:       month,
			ModeratorID: p.id,
			Points:      p.points,
			Amount:      pool * float64(p.points) / float64(totalPoints),
			Status:      entities.PayoutPending,
			GeneratedAt: generatedAt,
		})
	}

	if err := s.payouts.ReplaceForMonth(ctx, month, rows); err != nil {
		return nil, err
	}

	logging.Info("moderator payouts computed",
		"month", month,
		"pool", pool,
		"participants", len(rows),
	)
	return &dtos.PayoutReport{
		Month:        month,
		Pool:         pool,
		TotalPoints:  totalPoints,
		Participants: len(rows),
	}, nil
}

// CalculateAndSetUserRewards distributes the user share pool for a
// half-year period. The pool sums the entire recorded revenue history and
// weights are all-time engagement points; neither is period-scoped.
func (s *PayoutService) CalculateAndSetUserRewards(ctx context.Context, year int, half string) (*dtos.RewardReport, error) {
	if half != "H1" && half != "H2" {
		return nil, constants.ErrInvalidPeriod
	}

	pool := 0.0
	for _, rev := range s.revenue.All() {
		pool += rev.Total()
	}
	pool *= s.settings.Get().UserShareRatio

	type participant struct {
		id     string
		points int
	}
	var participants []participant
	totalPoints := 0
	for _, u := range s.users.ByRole(constants.RoleUser) {
		totalPoints += u.EngagementPoints
		if u.EngagementPoints > 0 {
			participants = append(participants, participant{id: u.ID, points: u.EngagementPoints})
		}
	}

	if totalPoints == 0 {
		return nil, constants.ErrNoActivity
	}

	generatedAt := s.now()
	rows := make([]entities.UserReward, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, entities.UserReward{
			Year:        year,
			Half:        half,
			UserID:      p.id,
			Points:      p.points,
			Amount:      pool * float64(p.points) / float64(totalPoints),
			Status:      entities.PayoutPending,
			GeneratedAt: generatedAt,
		})
	}

	if err := s.rewards.ReplaceForPeriod(ctx, year, half, rows); err != nil {
		return nil, err
	}

	logging.Info("user rewards computed",
		"year", year,
		"half", half,
		"pool", pool,
		"participants", len(rows),
	)
	return &dtos.RewardReport{
		Year:         year,
		Half:         half,
		Pool:         pool,
		TotalPoints:  totalPoints,
		Participants: len(rows),
	}, nil
}

// MarkModeratorPayoutPaid transitions a payout row pending -> paid.
func (s *PayoutService) MarkModeratorPayoutPaid(ctx context.Context, payoutID string) (entities.ModeratorPayout, error) {
	row, found, err := s.payouts.Mutate(ctx, payoutID, func(p *entities.ModeratorPayout) {
		p.Status = entities.PayoutPaid
	})
	if err != nil {
		return entities.ModeratorPayout{}, err
	}
	if !found {
		return entities.ModeratorPayout{}, constants.ErrNotFound
	}
	return row, nil
}

// MarkUserRewardPaid transitions a reward row pending -> paid.
func (s *PayoutService) MarkUserRewardPaid(ctx context.Context, rewardID string) (entities.UserReward, error) {
	row, found, err := s.rewards.Mutate(ctx, rewardID, func(p *entities.UserReward) {
		p.Status = entities.PayoutPaid
	})
	if err != nil {
		return entities.UserReward{}, err
	}
	if !found {
		return entities.UserReward{}, constants.ErrNotFound
	}
	return row, nil
}
