package repositories

import (
	"context"
	"fmt"
	"sync"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

// SettingsRepository owns the singleton platform settings record.
type SettingsRepository struct {
	mu      sync.RWMutex
	store   store.DocumentStore
	current entities.PlatformSettings
}

func NewSettingsRepository(ctx context.Context, s store.DocumentStore) *SettingsRepository {
	return &SettingsRepository{
		store:   s,
		current: store.LoadOrSeed(ctx, s, constants.KeyPlatformSettings, entities.DefaultPlatformSettings()),
	}
}

// Get returns the active settings value.
func (r *SettingsRepository) Get() entities.PlatformSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Update applies fn to the settings and persists the record.
func (r *SettingsRepository) Update(ctx context.Context, fn func(*entities.PlatformSettings)) (entities.PlatformSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(&r.current)
	if err := r.store.Save(ctx, constants.KeyPlatformSettings, r.current); err != nil {
		return r.current, fmt.Errorf("failed to persist platform settings: %w", err)
	}
	return r.current, nil
}
