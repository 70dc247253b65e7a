package entities

import "time"

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPending   BlogStatus = "pending"
	BlogPublished BlogStatus = "published"
	BlogRejected  BlogStatus = "rejected"
)

type BlogComment struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"authorId"`
	Body     string    `json:"body"`
	Date     time.Time `json:"date"`
}

// Blog is a moderator- or author-submitted article.
type Blog struct {
	ID        string        `json:"id"`
	AuthorID  string        `json:"authorId"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Status    BlogStatus    `json:"status"`
	Likes     []string      `json:"likes,omitempty"`
	Comments  []BlogComment `json:"comments,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
