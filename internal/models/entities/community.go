package entities

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ModeratorApplication is a user's request to become a moderator.
type ModeratorApplication struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Statement   string            `json:"statement"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	AddedBy  string `json:"addedBy"`
}

type SupportGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic"`
	OwnerID   string    `json:"ownerId"`
	MemberIDs []string  `json:"memberIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type GroupPost struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatMessage struct {
	SenderID string    `json:"senderId"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// ChatSession is one user/moderator support conversation.
type ChatSession struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	ModeratorID *string       `json:"moderatorId,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	EndedAt     *time.Time    `json:"endedAt,omitempty"`
}
