package services

import (
	"context"
	"testing"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/db/repositories"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) store.DocumentStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	s, err := store.NewGormStore(db)
	if err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return s
}

// fixedClock pins service time for deterministic month buckets and windows.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func addUser(t *testing.T, users *repositories.UserRepository, role constants.Role, email string) entities.User {
	t.Helper()

	user, err := users.Add(context.Background(), entities.User{
		Email:              email,
		Username:           email,
		Role:               role,
		SubscriptionStatus: constants.SubscriptionNone,
		CreatedAt:          time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}
	return user
}
