package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"

	"github.com/google/uuid"
)

// BlogService manages the article workflow: draft or pending on submit,
// published or rejected on review.
type BlogService struct {
	blogs *repositories.BlogRepository
	users *repositories.UserRepository
	rules *RulesService
	now   func() time.Time
}

func NewBlogService(blogs *repositories.BlogRepository, users *repositories.UserRepository, rules *RulesService) *BlogService {
	return &BlogService{
		blogs: blogs,
		users: users,
		rules: rules,
		now:   time.Now,
	}
}

func (s *BlogService) Submit(ctx context.Context, authorID, title, body string, draft bool) (entities.Blog, error) {
	if _, ok := s.users.Get(authorID); !ok {
		return entities.Blog{}, constants.ErrNotFound
	}

	status := entities.BlogPending
	if draft {
		status = entities.BlogDraft
	}
	return s.blogs.Add(ctx, entities.Blog{
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		Status:    status,
		CreatedAt: s.now(),
	})
}

// SubmitDraft moves a draft into the review queue.
func (s *BlogService) SubmitDraft(ctx context.Context, blogID string) (entities.Blog, error) {
	existing, ok := s.blogs.Get(blogID)
	if !ok {
		return entities.Blog{}, constants.ErrNotFound
	}
	if existing.Status != entities.BlogDraft {
		return entities.Blog{}, fmt.Errorf("blog %s is not a draft", blogID)
	}

	blog, _, err := s.blogs.Mutate(ctx, blogID, func(b *entities.Blog) {
		b.Status = entities.BlogPending
	})
	return blog, err
}

// Review publishes or rejects a pending article.
func (s *BlogService) Review(ctx context.Context, blogID string, publish bool) (entities.Blog, error) {
	existing, ok := s.blogs.Get(blogID)
	if !ok {
		return entities.Blog{}, constants.ErrNotFound
	}
	if existing.Status != entities.BlogPending {
		return entities.Blog{}, fmt.Errorf("blog %s is not pending review", blogID)
	}

	status := entities.BlogRejected
	if publish {
		status = entities.BlogPublished
	}
	blog, _, err := s.blogs.Mutate(ctx, blogID, func(b *entities.Blog) {
		b.Status = status
	})
	return blog, err
}

// ToggleLike flips userID's like on a published article. The owner gains
// receiveLike points only on the not-liked to liked transition.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID string) (entities.Blog, error) {
	var liked bool
	var ownerID string

	blog, found, err := s.blogs.Mutate(ctx, blogID, func(b *entities.Blog) {
		b.Likes, liked = entities.ToggleLike(b.Likes, userID)
		ownerID = b.AuthorID
	})
	if err != nil {
		return entities.Blog{}, err
	}
	if !found {
		return entities.Blog{}, constants.ErrNotFound
	}

	if liked {
		if err := s.rules.OnLikeAdded(ctx, ownerID); err != nil {
			return blog, fmt.Errorf("failed to apply like rules: %w", err)
		}
	}
	return blog, nil
}

func (s *BlogService) AddComment(ctx context.Context, blogID, authorID, body string) (entities.Blog, error) {
	if _, ok := s.users.Get(authorID); !ok {
		return entities.Blog{}, constants.ErrNotFound
	}

	blog, found, err := s.blogs.Mutate(ctx, blogID, func(b *entities.Blog) {
		b.Comments = append(b.Comments, entities.BlogComment{
			ID:       uuid.New().String(),
			AuthorID: authorID,
			Body:     body,
			Date:     s.now(),
		})
	})
	if err != nil {
		return entities.Blog{}, err
	}
	if !found {
		return entities.Blog{}, constants.ErrNotFound
	}
	return blog, nil
}
