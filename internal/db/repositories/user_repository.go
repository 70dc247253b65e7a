package repositories

import (
	"context"
	"strings"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

type UserRepository struct {
	*Collection[entities.User]
}

func NewUserRepository(ctx context.Context, s store.DocumentStore) *UserRepository {
	return &UserRepository{
		Collection: NewCollection(ctx, s, constants.ColUsers, []entities.User{},
			func(u *entities.User) string { return u.ID },
			func(u *entities.User, id string) { u.ID = id },
		),
	}
}

// FindByEmail looks a user up by email, case-insensitively.
func (r *UserRepository) FindByEmail(email string) (entities.User, bool) {
	matches := r.Filter(func(u *entities.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if len(matches) == 0 {
		return entities.User{}, false
	}
	return matches[0], true
}

// ByRole returns all users holding the given role.
func (r *UserRepository) ByRole(role constants.Role) []entities.User {
	return r.Filter(func(u *entities.User) bool { return u.Role == role })
}

// Moderators returns all moderator accounts.
func (r *UserRepository) Moderators() []entities.User {
	return r.ByRole(constants.RoleModerator)
}
