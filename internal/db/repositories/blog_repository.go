package repositories

import (
	"context"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type BlogRepository struct {
	*Collection[entities.Blog]
}

func NewBlogRepository(ctx context.Context, s store.DocumentStore) *BlogRepository {
	return &BlogRepository{
		Collection: NewCollection(ctx, s, constants.ColBlogs, []entities.Blog{},
			func(b *entities.Blog) string { return b.ID },
			func(b *entities.Blog, id string) { b.ID = id },
		),
	}
}

// Published returns all publicly visible articles.
func (r *BlogRepository) Published() []entities.Blog {
	return r.Filter(func(b *entities.Blog) bool { return b.Status == entities.BlogPublished })
}

// PendingReview returns articles awaiting moderation.
func (r *BlogRepository) PendingReview() []entities.Blog {
	return r.Filter(func(b *entities.Blog) bool { return b.Status == entities.BlogPending })
}
