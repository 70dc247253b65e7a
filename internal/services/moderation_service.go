package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/models/entities"
)

// ModerationService covers account registration, moderator applications,
// warnings, suspensions, badges, and the single admin-only point edit path.
type ModerationService struct {
	users        *repositories.UserRepository
	applications *repositories.ModeratorApplicationRepository
	badges       *repositories.BadgeRepository
	settings     *repositories.SettingsRepository
	now          func() time.Time
}

func NewModerationService(
	users *repositories.UserRepository,
	applications *repositories.ModeratorApplicationRepository,
	badges *repositories.BadgeRepository,
	settings *repositories.SettingsRepository,
) *ModerationService {
	return &ModerationService{
		users:        users,
		applications: applications,
		badges:       badges,
		settings:     settings,
		now:          time.Now,
	}
}

// RegisterUser creates an account. Addresses under the configured
// moderator email domain are registered as moderators.
func (s *ModerationService) RegisterUser(ctx context.Context, email, username string) (entities.User, error) {
	if _, exists := s.users.FindByEmail(email); exists {
		return entities.User{}, constants.ErrDuplicateEmail
	}

	role := constants.RoleUser
	domain := strings.ToLower(s.settings.Get().ModeratorEmailDomain)
	if domain != "" && strings.HasSuffix(strings.ToLower(email), "@"+domain) {
		role = constants.RoleModerator
	}

	user, err := s.users.Add(ctx, entities.User{
		Email:              email,
		Username:           username,
		Role:               role,
		SubscriptionStatus: constants.SubscriptionNone,
		CreatedAt:          s.now(),
	})
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to store user: %w", err)
	}

	logging.Info("user registered", "user_id", user.ID, "role", role.String())
	return user, nil
}

// ApplyForModerator submits a pending application.
func (s *ModerationService) ApplyForModerator(ctx context.Context, userID, statement string) (entities.ModeratorApplication, error) {
	if _, ok := s.users.Get(userID); !ok {
		return entities.ModeratorApplication{}, constants.ErrNotFound
	}

	return s.applications.Add(ctx, entities.ModeratorApplication{
		UserID:      userID,
		Statement:   statement,
		Status:      entities.ApplicationPending,
		SubmittedAt: s.now(),
	})
}

// ReviewApplication resolves a pending application; approval promotes the
// applicant to moderator.
func (s *ModerationService) ReviewApplication(ctx context.Context, applicationID string, approve bool) (entities.ModeratorApplication, error) {
	existing, ok := s.applications.Get(applicationID)
	if !ok {
		return entities.ModeratorApplication{}, constants.ErrNotFound
	}
	if existing.Status != entities.ApplicationPending {
		return entities.ModeratorApplication{}, constants.ErrAlreadyReviewed
	}

	status := entities.ApplicationRejected
	if approve {
		status = entities.ApplicationApproved
	}
	app, _, err := s.applications.Mutate(ctx, applicationID, func(a *entities.ModeratorApplication) {
		a.Status = status
	})
	if err != nil {
		return entities.ModeratorApplication{}, err
	}

	if approve {
		if _, _, err := s.users.Mutate(ctx, existing.UserID, func(u *entities.User) {
			u.Role = constants.RoleModerator
		}); err != nil {
			return app, fmt.Errorf("failed to promote applicant: %w", err)
		}
	}
	return app, nil
}

// WarnUser appends a warning to the user's record.
func (s *ModerationService) WarnUser(ctx context.Context, userID, reason string) (entities.User, error) {
	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		u.Warnings = append(u.Warnings, entities.Warning{Reason: reason, Date: s.now()})
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}
	return user, nil
}

// SuspendUser blocks submissions until the given instant.
func (s *ModerationService) SuspendUser(ctx context.Context, userID string, until time.Time) (entities.User, error) {
	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		u.SuspendedUntil = &until
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}

	logging.Warn("user suspended", "user_id", userID, "until", until.Format(time.RFC3339))
	return user, nil
}

// AwardBadge attaches a badge to the user once.
func (s *ModerationService) AwardBadge(ctx context.Context, userID, badgeID string) (entities.User, error) {
	if _, ok := s.badges.Get(badgeID); !ok {
		return entities.User{}, constants.ErrNotFound
	}

	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		for _, b := range u.AwardedBadges {
			if b == badgeID {
				return
			}
		}
		u.AwardedBadges = append(u.AwardedBadges, badgeID)
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}
	return user, nil
}

// AdjustEngagementPoints sets a user's engagement points directly. This is
// the only path allowed to move the field downward.
func (s *ModerationService) AdjustEngagementPoints(ctx context.Context, userID string, points int) (entities.User, error) {
	user, found, err := s.users.Mutate(ctx, userID, func(u *entities.User) {
		u.EngagementPoints = points
	})
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, constants.ErrNotFound
	}

	logging.Info("engagement points adjusted by admin", "user_id", userID, "points", points)
	return user, nil
}
