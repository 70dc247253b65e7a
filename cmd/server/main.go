package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"khola-chithi/engine/internal/db"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/routes"
	"khola-chithi/engine/internal/store"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Khola Chithi engine starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	docs, err := openStore()
	if err != nil {
		logging.Error("Failed to open document store", "error", err.Error())
		log.Fatalf("❌ Failed to open document store: %v", err)
	}

	upSince := time.Now()
	ctx := context.Background()

	// Initialize router with Chi
	// Note: metricsReg is created in RegisterRoutes and applied as global middleware
	router := routes.RegisterRoutes(ctx, docs, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logging.Info("Server starting",
		"port", port,
		"environment", appEnv,
	)

	log.Printf("Starting server on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

// openStore selects the persistence backend. ENGINE_DB=postgres uses the
// sqlx JSONB store; anything else falls back to sqlite via GORM.
func openStore() (store.DocumentStore, error) {
	if os.Getenv("ENGINE_DB") == "postgres" {
		if err := db.InitPostgres(); err != nil {
			return nil, err
		}
		logging.Info("Connected to Postgres (sqlx)")
		return store.NewPostgresStore(db.DB)
	}

	path := os.Getenv("ENGINE_SQLITE_PATH")
	if path == "" {
		path = "engine.db"
	}
	orm, err := db.InitSQLiteORM(path)
	if err != nil {
		return nil, fmt.Errorf("sqlite init: %w", err)
	}
	logging.Info("Connected to SQLite (GORM)", "path", path)
	return store.NewGormStore(orm)
}
