package entities

import "time"

// LetterStatus mirrors the persisted letter lifecycle state
type LetterStatus string

const (
	LetterPending LetterStatus = "PENDING"
	LetterReplied LetterStatus = "REPLIED"
)

// Letter is one anonymous letter from a user, optionally assigned to a
// moderator. DateReplied is set iff Status is REPLIED.
type Letter struct {
	ID              string       `json:"id"`
	AuthorID        string       `json:"authorId"`
	ModeratorID     *string      `json:"moderatorId,omitempty"`
	Subject         string       `json:"subject"`
	Body            string       `json:"body"`
	Reply           string       `json:"reply,omitempty"`
	Status          LetterStatus `json:"status"`
	ModeratorRating *int         `json:"moderatorRating,omitempty"`
	DateSent        time.Time    `json:"dateSent"`
	DateReplied     *time.Time   `json:"dateReplied,omitempty"`
}
