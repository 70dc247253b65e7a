package store

import (
	"context"
	"errors"

	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/metrics"
)

// ErrNotFound is returned by Load when no document exists for the key.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the persistence port of the engine. Each key addresses
// one whole JSON document; Save replaces any prior content.
type DocumentStore interface {
	Load(ctx context.Context, key string, out any) error
	Save(ctx context.Context, key string, value any) error
}

// LoadOrSeed loads the document for key into a value of type T, returning
// seed when the record is absent or unparsable. Parse failures are logged,
// never raised to the caller.
func LoadOrSeed[T any](ctx context.Context, s DocumentStore, key string, seed T) T {
	var out T
	if err := s.Load(ctx, key, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			logging.Debug("document missing, seeding", "key", key)
		} else {
			logging.Warn("document load failed, falling back to seed",
				"key", key,
				"error", err.Error(),
			)
			metrics.Default().StoreLoadFailuresTotal.Inc()
		}
		return seed
	}
	return out
}
