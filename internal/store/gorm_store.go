package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the single-table layout of the document store: one row per
// collection key, whole collection serialized into body.
type Document struct {
	Key  string `gorm:"column:key;primaryKey"`
	Body []byte `gorm:"column:body"`
}

// TableName specifies the table name for GORM
func (Document) TableName() string { return "documents" }

// GormStore is the default DocumentStore backend (sqlite file or postgres,
// depending on the dialector the *gorm.DB was opened with).
type GormStore struct {
	db *gorm.DB
	sf singleflight.Group
}

var _ DocumentStore = (*GormStore)(nil)

// NewGormStore migrates the documents table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, key string, out any) error {
	body, err, _ := s.sf.Do(key, func() (any, error) {
		var doc Document
		err := s.db.WithContext(ctx).Where("key = ?", key).First(&doc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to fetch document %q: %w", key, err)
		}
		return doc.Body, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}

	doc := Document{Key: key, Body: body}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}
