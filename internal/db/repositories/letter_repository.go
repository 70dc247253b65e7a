package repositories

import (
	"context"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type LetterRepository struct {
	*Collection[entities.Letter]
}

func NewLetterRepository(ctx context.Context, s store.DocumentStore) *LetterRepository {
	return &LetterRepository{
		Collection: NewCollection(ctx, s, constants.ColLetters, []entities.Letter{},
			func(l *entities.Letter) string { return l.ID },
			func(l *entities.Letter, id string) { l.ID = id },
		),
	}
}

// ByAuthor returns all letters written by the user.
func (r *LetterRepository) ByAuthor(userID string) []entities.Letter {
	return r.Filter(func(l *entities.Letter) bool { return l.AuthorID == userID })
}

// AssignedTo returns all letters assigned to the moderator.
func (r *LetterRepository) AssignedTo(moderatorID string) []entities.Letter {
	return r.Filter(func(l *entities.Letter) bool {
		return l.ModeratorID != nil && *l.ModeratorID == moderatorID
	})
}

// Pending returns all letters awaiting a reply.
func (r *LetterRepository) Pending() []entities.Letter {
	return r.Filter(func(l *entities.Letter) bool { return l.Status == entities.LetterPending })
}

// CountSentBetween counts the user's letters with DateSent in [from, to].
func (r *LetterRepository) CountSentBetween(userID string, from, to time.Time) int {
	return r.Count(func(l *entities.Letter) bool {
		if l.AuthorID != userID {
			return false
		}
		return !l.DateSent.Before(from) && !l.DateSent.After(to)
	})
}
