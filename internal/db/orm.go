package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ORM *gorm.DB

// InitSQLiteORM opens the default sqlite-backed engine database.
func InitSQLiteORM(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	ORM = db
	log.Println("Connected to SQLite via GORM")
	return db, nil
}

// InitPostgresORM opens a postgres-backed engine database.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	ORM = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}
