package repositories

import (
	"context"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type PostRepository struct {
	*Collection[entities.Post]
}

func NewPostRepository(ctx context.Context, s store.DocumentStore) *PostRepository {
	return &PostRepository{
		Collection: NewCollection(ctx, s, constants.ColPosts, []entities.Post{},
			func(p *entities.Post) string { return p.ID },
			func(p *entities.Post, id string) { p.ID = id },
		),
	}
}

// Visible returns posts that have not been hidden by moderation.
func (r *PostRepository) Visible() []entities.Post {
	return r.Filter(func(p *entities.Post) bool { return !p.IsHidden })
}

// Reported returns posts flagged for moderator review.
func (r *PostRepository) Reported() []entities.Post {
	return r.Filter(func(p *entities.Post) bool { return p.IsReported && !p.IsHidden })
}

type MemoryRepository struct {
	*Collection[entities.Memory]
}

func NewMemoryRepository(ctx context.Context, s store.DocumentStore) *MemoryRepository {
	return &MemoryRepository{
		Collection: NewCollection(ctx, s, constants.ColMemories, []entities.Memory{},
			func(m *entities.Memory) string { return m.ID },
			func(m *entities.Memory, id string) { m.ID = id },
		),
	}
}

// ByStatus returns memories in the given review state.
func (r *MemoryRepository) ByStatus(status entities.MemoryStatus) []entities.Memory {
	return r.Filter(func(m *entities.Memory) bool { return m.Status == status })
}

type GratitudeRepository struct {
	*Collection[entities.GratitudeEntry]
}

func NewGratitudeRepository(ctx context.Context, s store.DocumentStore) *GratitudeRepository {
	return &GratitudeRepository{
		Collection: NewCollection(ctx, s, constants.ColGratitudeEntries, []entities.GratitudeEntry{},
			func(g *entities.GratitudeEntry) string { return g.ID },
			func(g *entities.GratitudeEntry, id string) { g.ID = id },
		),
	}
}
