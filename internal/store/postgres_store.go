package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"
)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		key  TEXT PRIMARY KEY,
		body JSONB NOT NULL
	);
`

// PostgresStore is the sqlx-backed DocumentStore for deployments that keep
// the document table in Postgres directly.
type PostgresStore struct {
	db *sqlx.DB
	sf singleflight.Group
}

var _ DocumentStore = (*PostgresStore)(nil)

func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.Exec(createDocumentsTable); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context, key string, out any) error {
	body, err, _ := s.sf.Do(key, func() (any, error) {
		var raw []byte
		err := s.db.QueryRowxContext(ctx,
			`SELECT body FROM documents WHERE key = $1`, key).Scan(&raw)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to fetch document %q: %w", key, err)
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, body)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body;
	`, key, body)
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}
