package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

// LetterService orchestrates the letter lifecycle: persistence through the
// letter repository, point side effects through the rules engine.
type LetterService struct {
	letters *repositories.LetterRepository
	users   *repositories.UserRepository
	rules   *RulesService
	now     func() time.Time
}

func NewLetterService(letters *repositories.LetterRepository, users *repositories.UserRepository, rules *RulesService) *LetterService {
	return &LetterService{
		letters: letters,
		users:   users,
		rules:   rules,
		now:     time.Now,
	}
}

// SendLetter stores a new pending letter and applies the letter-sent rules.
// The 24h submission cap is advisory; enforcement belongs to the caller.
func (s *LetterService) SendLetter(ctx context.Context, authorID, subject, body string) (entities.Letter, error) {
	author, ok := s.users.Get(authorID)
	if !ok {
		return entities.Letter{}, constants.ErrNotFound
	}
	if author.IsSuspended(s.now()) {
		return entities.Letter{}, constants.ErrUserSuspended
	}

	letter, err := s.letters.Add(ctx, entities.Letter{
		AuthorID: authorID,
		Subject:  subject,
		Body:     body,
		Status:   entities.LetterPending,
		DateSent: s.now(),
	})
	if err != nil {
		return entities.Letter{}, fmt.Errorf("failed to store letter: %w", err)
	}

	if err := s.rules.OnLetterSent(ctx, authorID); err != nil {
		return letter, fmt.Errorf("failed to apply letter-sent rules: %w", err)
	}
	return letter, nil
}

// AssignLetter attaches a moderator to a pending letter.
func (s *LetterService) AssignLetter(ctx context.Context, letterID, moderatorID string) (entities.Letter, error) {
	mod, ok := s.users.Get(moderatorID)
	if !ok || mod.Role == constants.RoleUser {
		return entities.Letter{}, constants.ErrNotFound
	}

	letter, found, err := s.letters.Mutate(ctx, letterID, func(l *entities.Letter) {
		l.ModeratorID = &moderatorID
	})
	if err != nil {
		return entities.Letter{}, err
	}
	if !found {
		return entities.Letter{}, constants.ErrNotFound
	}
	return letter, nil
}

// ReplyToLetter transitions a pending letter to REPLIED, stamps
// dateReplied, and applies the reply rules.
func (s *LetterService) ReplyToLetter(ctx context.Context, letterID, moderatorID, reply string) (entities.Letter, error) {
	existing, ok := s.letters.Get(letterID)
	if !ok {
		return entities.Letter{}, constants.ErrNotFound
	}
	if existing.Status != entities.LetterPending {
		return entities.Letter{}, constants.ErrLetterNotPending
	}

	repliedAt := s.now()
	letter, _, err := s.letters.Mutate(ctx, letterID, func(l *entities.Letter) {
		l.Status = entities.LetterReplied
		l.Reply = reply
		l.ModeratorID = &moderatorID
		l.DateReplied = &repliedAt
	})
	if err != nil {
		return entities.Letter{}, err
	}

	if err := s.rules.OnLetterReplied(ctx, moderatorID, existing.DateSent, repliedAt); err != nil {
		return letter, fmt.Errorf("failed to apply reply rules: %w", err)
	}
	return letter, nil
}

// RateLetter records the author's 1-10 rating of a replied letter and
// applies the rating rules.
func (s *LetterService) RateLetter(ctx context.Context, letterID string, rating int) (entities.Letter, error) {
	if rating < 1 || rating > 10 {
		return entities.Letter{}, constants.ErrInvalidRating
	}

	existing, ok := s.letters.Get(letterID)
	if !ok {
		return entities.Letter{}, constants.ErrNotFound
	}
	if existing.Status != entities.LetterReplied {
		return entities.Letter{}, constants.ErrLetterNotReplied
	}

	letter, _, err := s.letters.Mutate(ctx, letterID, func(l *entities.Letter) {
		l.ModeratorRating = &rating
	})
	if err != nil {
		return entities.Letter{}, err
	}

	moderatorID := ""
	if existing.ModeratorID != nil {
		moderatorID = *existing.ModeratorID
	}
	if err := s.rules.OnLetterRated(ctx, existing.AuthorID, moderatorID, rating); err != nil {
		return letter, fmt.Errorf("failed to apply rating rules: %w", err)
	}
	return letter, nil
}
