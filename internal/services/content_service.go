package services

import (
	"context"
	"fmt"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
)

// ContentService orchestrates posts, memories, and gratitude entries.
type ContentService struct {
	posts     *repositories.PostRepository
	memories  *repositories.MemoryRepository
	gratitude *repositories.GratitudeRepository
	users     *repositories.UserRepository
	rules     *RulesService
	now       func() time.Time
}

func NewContentService(
	posts *repositories.PostRepository,
	memories *repositories.MemoryRepository,
	gratitude *repositories.GratitudeRepository,
	users *repositories.UserRepository,
	rules *RulesService,
) *ContentService {
	return &ContentService{
		posts:     posts,
		memories:  memories,
		gratitude: gratitude,
		users:     users,
		rules:     rules,
		now:       time.Now,
	}
}

func (s *ContentService) CreatePost(ctx context.Context, authorID, body string) (entities.Post, error) {
	if _, ok := s.users.Get(authorID); !ok {
		return entities.Post{}, constants.ErrNotFound
	}

	post, err := s.posts.Add(ctx, entities.Post{
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	})
	if err != nil {
		return entities.Post{}, fmt.Errorf("failed to store post: %w", err)
	}

	if err := s.rules.OnContentCreated(ctx, authorID); err != nil {
		return post, fmt.Errorf("failed to apply post rules: %w", err)
	}
	return post, nil
}

// ToggleLikePost flips userID's like on the post. Points are awarded only
// on the not-liked to liked transition; unliking never deducts.
func (s *ContentService) ToggleLikePost(ctx context.Context, postID, userID string) (entities.Post, error) {
	var liked bool
	var ownerID string

	post, found, err := s.posts.Mutate(ctx, postID, func(p *entities.Post) {
		p.Likes, liked = entities.ToggleLike(p.Likes, userID)
		ownerID = p.AuthorID
	})
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, constants.ErrNotFound
	}

	if liked {
		if err := s.rules.OnLikeAdded(ctx, ownerID); err != nil {
			return post, fmt.Errorf("failed to apply like rules: %w", err)
		}
	}
	return post, nil
}

func (s *ContentService) ReportPost(ctx context.Context, postID string) (entities.Post, error) {
	post, found, err := s.posts.Mutate(ctx, postID, func(p *entities.Post) {
		p.IsReported = true
	})
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, constants.ErrNotFound
	}
	return post, nil
}

// HidePost hides a reported post and credits the reviewing moderator.
func (s *ContentService) HidePost(ctx context.Context, postID, moderatorID string) (entities.Post, error) {
	post, found, err := s.posts.Mutate(ctx, postID, func(p *entities.Post) {
		p.IsHidden = true
	})
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, constants.ErrNotFound
	}

	if err := s.rules.OnReportedPostReviewed(ctx, moderatorID); err != nil {
		return post, fmt.Errorf("failed to apply review rules: %w", err)
	}
	return post, nil
}

func (s *ContentService) EscalatePost(ctx context.Context, postID string) (entities.Post, error) {
	post, found, err := s.posts.Mutate(ctx, postID, func(p *entities.Post) {
		p.EscalatedToAdmin = true
	})
	if err != nil {
		return entities.Post{}, err
	}
	if !found {
		return entities.Post{}, constants.ErrNotFound
	}
	return post, nil
}

// CreateMemory stores a pending memory and applies the memory rules. The
// 7-day cooldown is advisory; enforcement belongs to the caller.
func (s *ContentService) CreateMemory(ctx context.Context, authorID, title, body string) (entities.Memory, error) {
	if _, ok := s.users.Get(authorID); !ok {
		return entities.Memory{}, constants.ErrNotFound
	}

	memory, err := s.memories.Add(ctx, entities.Memory{
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		Status:    entities.MemoryPending,
		CreatedAt: s.now(),
	})
	if err != nil {
		return entities.Memory{}, fmt.Errorf("failed to store memory: %w", err)
	}

	if err := s.rules.OnMemoryPosted(ctx, authorID); err != nil {
		return memory, fmt.Errorf("failed to apply memory rules: %w", err)
	}
	return memory, nil
}

// ToggleLikeMemory mirrors ToggleLikePost for memories.
func (s *ContentService) ToggleLikeMemory(ctx context.Context, memoryID, userID string) (entities.Memory, error) {
	var liked bool
	var ownerID string

	memory, found, err := s.memories.Mutate(ctx, memoryID, func(m *entities.Memory) {
		m.Likes, liked = entities.ToggleLike(m.Likes, userID)
		ownerID = m.AuthorID
	})
	if err != nil {
		return entities.Memory{}, err
	}
	if !found {
		return entities.Memory{}, constants.ErrNotFound
	}

	if liked {
		if err := s.rules.OnLikeAdded(ctx, ownerID); err != nil {
			return memory, fmt.Errorf("failed to apply like rules: %w", err)
		}
	}
	return memory, nil
}

// ReviewMemory moves a memory to approved or rejected.
func (s *ContentService) ReviewMemory(ctx context.Context, memoryID string, status entities.MemoryStatus) (entities.Memory, error) {
	if status != entities.MemoryApproved && status != entities.MemoryRejected {
		return entities.Memory{}, fmt.Errorf("invalid review status %q", status)
	}

	memory, found, err := s.memories.Mutate(ctx, memoryID, func(m *entities.Memory) {
		m.Status = status
	})
	if err != nil {
		return entities.Memory{}, err
	}
	if !found {
		return entities.Memory{}, constants.ErrNotFound
	}
	return memory, nil
}

func (s *ContentService) CreateGratitude(ctx context.Context, authorID, body string) (entities.GratitudeEntry, error) {
	if _, ok := s.users.Get(authorID); !ok {
		return entities.GratitudeEntry{}, constants.ErrNotFound
	}

	entry, err := s.gratitude.Add(ctx, entities.GratitudeEntry{
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	})
	if err != nil {
		return entities.GratitudeEntry{}, fmt.Errorf("failed to store gratitude entry: %w", err)
	}

	if err := s.rules.OnContentCreated(ctx, authorID); err != nil {
		return entry, fmt.Errorf("failed to apply gratitude rules: %w", err)
	}
	return entry, nil
}
