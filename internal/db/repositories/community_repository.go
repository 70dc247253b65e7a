package repositories

import (
	"context"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type ModeratorApplicationRepository struct {
	*Collection[entities.ModeratorApplication]
}

func NewModeratorApplicationRepository(ctx context.Context, s store.DocumentStore) *ModeratorApplicationRepository {
	return &ModeratorApplicationRepository{
		Collection: NewCollection(ctx, s, constants.ColModeratorApplications, []entities.ModeratorApplication{},
			func(a *entities.ModeratorApplication) string { return a.ID },
			func(a *entities.ModeratorApplication, id string) { a.ID = id },
		),
	}
}

// Pending returns applications awaiting review.
func (r *ModeratorApplicationRepository) Pending() []entities.ModeratorApplication {
	return r.Filter(func(a *entities.ModeratorApplication) bool {
		return a.Status == entities.ApplicationPending
	})
}

type BadgeRepository struct {
	*Collection[entities.Badge]
}

func NewBadgeRepository(ctx context.Context, s store.DocumentStore) *BadgeRepository {
	return &BadgeRepository{
		Collection: NewCollection(ctx, s, constants.ColBadges, []entities.Badge{},
			func(b *entities.Badge) string { return b.ID },
			func(b *entities.Badge, id string) { b.ID = id },
		),
	}
}

type ResourceRepository struct {
	*Collection[entities.Resource]
}

func NewResourceRepository(ctx context.Context, s store.DocumentStore) *ResourceRepository {
	return &ResourceRepository{
		Collection: NewCollection(ctx, s, constants.ColResources, []entities.Resource{},
			func(r *entities.Resource) string { return r.ID },
			func(r *entities.Resource, id string) { r.ID = id },
		),
	}
}

type SupportGroupRepository struct {
	*Collection[entities.SupportGroup]
}

func NewSupportGroupRepository(ctx context.Context, s store.DocumentStore) *SupportGroupRepository {
	return &SupportGroupRepository{
		Collection: NewCollection(ctx, s, constants.ColSupportGroups, []entities.SupportGroup{},
			func(g *entities.SupportGroup) string { return g.ID },
			func(g *entities.SupportGroup, id string) { g.ID = id },
		),
	}
}

type GroupPostRepository struct {
	*Collection[entities.GroupPost]
}

func NewGroupPostRepository(ctx context.Context, s store.DocumentStore) *GroupPostRepository {
	return &GroupPostRepository{
		Collection: NewCollection(ctx, s, constants.ColGroupPosts, []entities.GroupPost{},
			func(p *entities.GroupPost) string { return p.ID },
			func(p *entities.GroupPost, id string) { p.ID = id },
		),
	}
}

// ByGroup returns all posts within the group.
func (r *GroupPostRepository) ByGroup(groupID string) []entities.GroupPost {
	return r.Filter(func(p *entities.GroupPost) bool { return p.GroupID == groupID })
}

type ChatSessionRepository struct {
	*Collection[entities.ChatSession]
}

func NewChatSessionRepository(ctx context.Context, s store.DocumentStore) *ChatSessionRepository {
	return &ChatSessionRepository{
		Collection: NewCollection(ctx, s, constants.ColChatSessions, []entities.ChatSession{},
			func(c *entities.ChatSession) string { return c.ID },
			func(c *entities.ChatSession, id string) { c.ID = id },
		),
	}
}
