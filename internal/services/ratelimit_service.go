package services

import (
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/dtos"
	"khola-chithi/engine/internal/models/entities"
)

// RateLimitService exposes cooldown and quota queries. It never blocks a
// mutation itself; enforcement is the calling layer's responsibility.
type RateLimitService struct {
	letters *repositories.LetterRepository
	now     func() time.Time
}

func NewRateLimitService(letters *repositories.LetterRepository) *RateLimitService {
	return &RateLimitService{
		letters: letters,
		now:     time.Now,
	}
}

// LettersSentInWindow counts the user's letters sent within the rolling
// window ending now. A non-positive window uses the 24h default.
func (s *RateLimitService) LettersSentInWindow(userID string, window time.Duration) int {
	if window <= 0 {
		window = constants.LetterWindow
	}
	now := s.now()
	return s.letters.CountSentBetween(userID, now.Add(-window), now)
}

// LetterQuota reports the advisory letter limit state for the user.
func (s *RateLimitService) LetterQuota(userID string) dtos.QuotaStatus {
	return dtos.QuotaStatus{
		SentInWindow: s.LettersSentInWindow(userID, constants.LetterWindow),
		Cap:          constants.LetterWindowCap,
		WindowEnds:   s.now().Add(constants.LetterWindow),
	}
}

// CanPostMemory is true when the user has never posted a memory, or the
// last one is at least seven days old.
func (s *RateLimitService) CanPostMemory(u *entities.User) bool {
	if u.LastMemoryPostDate == nil {
		return true
	}
	return s.now().Sub(*u.LastMemoryPostDate) >= constants.MemoryCooldown
}
