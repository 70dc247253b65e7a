package services

import (
	"context"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/models/entities"
)

// RulesService derives point and cooldown side effects from primary
// mutations. It never creates or destroys entities, only mutates point and
// date fields on existing users.
type RulesService struct {
	users    *repositories.UserRepository
	settings *repositories.SettingsRepository
	now      func() time.Time
}

func NewRulesService(users *repositories.UserRepository, settings *repositories.SettingsRepository) *RulesService {
	return &RulesService{
		users:    users,
		settings: settings,
		now:      time.Now,
	}
}

// monthKey formats a bucket key as YYYY-MM.
func monthKey(t time.Time) string { return t.Format("2006-01") }

// awardPerformance appends the immutable detail entry before moving the
// bucket total.
func awardPerformance(u *entities.User, month string, event constants.PointEvent, points int, date time.Time) {
	bucket := u.PerformanceBucket(month)
	bucket.Log = append(bucket.Log, entities.PointAward{Type: event, Points: points, Date: date})
	bucket.Points += points
}

func (s *RulesService) mutateUser(ctx context.Context, userID string, fn func(*entities.User)) error {
	_, ok, err := s.users.Mutate(ctx, userID, fn)
	if err != nil {
		return err
	}
	if !ok {
		return constants.ErrNotFound
	}
	return nil
}

// OnLetterSent awards writeLetter engagement points to the author and
// stamps the letter cooldown date.
func (s *RulesService) OnLetterSent(ctx context.Context, authorID string) error {
	pts := s.settings.Get().Points
	now := s.now()
	return s.mutateUser(ctx, authorID, func(u *entities.User) {
		u.EngagementPoints += pts.WriteLetter
		u.LastLetterSentDate = &now
	})
}

// OnLetterReplied credits the moderator's month bucket with replyToLetter,
// plus the replyFast bonus when the reply latency is within 24h inclusive.
func (s *RulesService) OnLetterReplied(ctx context.Context, moderatorID string, dateSent, dateReplied time.Time) error {
	pts := s.settings.Get().Points
	latency := dateReplied.Sub(dateSent)
	month := monthKey(dateReplied)

	err := s.mutateUser(ctx, moderatorID, func(u *entities.User) {
		awardPerformance(u, month, constants.PointEventReplyToLetter, pts.ReplyToLetter, dateReplied)
		if latency <= constants.FastReplyLatency {
			awardPerformance(u, month, constants.PointEventReplyFast, pts.ReplyFast, dateReplied)
		}
	})
	if err != nil {
		return err
	}

	logging.Debug("reply points awarded",
		"moderator_id", moderatorID,
		"month", month,
		"latency_hours", latency.Hours(),
	)
	return nil
}

// OnLetterRated applies the rating point rules: >=8 rewards both sides,
// <=4 penalizes the moderator, 5-7 is a neutral band with no change.
func (s *RulesService) OnLetterRated(ctx context.Context, authorID, moderatorID string, rating int) error {
	pts := s.settings.Get().Points
	now := s.now()
	month := monthKey(now)

	switch {
	case rating >= 8:
		if err := s.mutateUser(ctx, authorID, func(u *entities.User) {
			u.EngagementPoints += pts.GiveGoodRating
		}); err != nil {
			return err
		}
		if moderatorID == "" {
			return nil
		}
		return s.mutateUser(ctx, moderatorID, func(u *entities.User) {
			awardPerformance(u, month, constants.PointEventReceiveGoodRating, pts.ReceiveGoodRating, now)
		})
	case rating <= 4:
		if moderatorID == "" {
			return nil
		}
		return s.mutateUser(ctx, moderatorID, func(u *entities.User) {
			awardPerformance(u, month, constants.PointEventReceiveBadRating, pts.ReceiveBadRating, now)
		})
	}

	// 5-7 is the neutral band
	return nil
}

// OnLikeAdded awards the content owner receiveLike points. Only the
// not-liked to liked transition calls this; unlike never deducts.
func (s *RulesService) OnLikeAdded(ctx context.Context, ownerID string) error {
	pts := s.settings.Get().Points
	return s.mutateUser(ctx, ownerID, func(u *entities.User) {
		u.EngagementPoints += pts.ReceiveLike
	})
}

// OnReportedPostReviewed credits the hiding moderator once per hide action.
func (s *RulesService) OnReportedPostReviewed(ctx context.Context, moderatorID string) error {
	pts := s.settings.Get().Points
	now := s.now()
	return s.mutateUser(ctx, moderatorID, func(u *entities.User) {
		awardPerformance(u, monthKey(now), constants.PointEventReviewReportedPost, pts.ReviewReportedPost, now)
	})
}

// OnContentCreated awards writePost engagement points for a public post.
func (s *RulesService) OnContentCreated(ctx context.Context, authorID string) error {
	pts := s.settings.Get().Points
	return s.mutateUser(ctx, authorID, func(u *entities.User) {
		u.EngagementPoints += pts.WritePost
	})
}

// OnMemoryPosted reuses the writePost constant and stamps the memory
// cooldown date.
func (s *RulesService) OnMemoryPosted(ctx context.Context, authorID string) error {
	pts := s.settings.Get().Points
	now := s.now()
	return s.mutateUser(ctx, authorID, func(u *entities.User) {
		u.EngagementPoints += pts.WritePost
		u.LastMemoryPostDate = &now
	})
}
