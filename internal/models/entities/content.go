package entities

import "time"

// Post is a user-visible public post with moderation flags.
type Post struct {
	ID               string    `json:"id"`
	AuthorID         string    `json:"authorId"`
	Body             string    `json:"body"`
	Likes            []string  `json:"likes,omitempty"`
	IsReported       bool      `json:"isReported"`
	IsHidden         bool      `json:"isHidden"`
	EscalatedToAdmin bool      `json:"escalatedToAdmin"`
	CreatedAt        time.Time `json:"createdAt"`
}

type MemoryStatus string

const (
	MemoryPending  MemoryStatus = "pending"
	MemoryApproved MemoryStatus = "approved"
	MemoryRejected MemoryStatus = "rejected"
)

// Memory is a remembrance post that passes through moderator review.
type Memory struct {
	ID        string       `json:"id"`
	AuthorID  string       `json:"authorId"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Likes     []string     `json:"likes,omitempty"`
	Status    MemoryStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// GratitudeEntry is a short thankfulness note, no moderation flags.
type GratitudeEntry struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasLike reports membership of userID in a likes set.
func HasLike(likes []string, userID string) bool {
	for _, id := range likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes userID and reports whether the result
// transitioned to liked.
func ToggleLike(likes []string, userID string) ([]string, bool) {
	for i, id := range likes {
		if id == userID {
			return append(likes[:i], likes[i+1:]...), false
		}
	}
	return append(likes, userID), true
}
