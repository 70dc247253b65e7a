package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/entities"
	"khola-chithi/engine/internal/store"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(docs store.DocumentStore, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		// Read a known key to confirm the document store is reachable
		storeStatus := "ok"
		storeDetails := "Document store reachable"
		var settings entities.PlatformSettings
		if err := docs.Load(r.Context(), constants.KeyPlatformSettings, &settings); err != nil && !errors.Is(err, store.ErrNotFound) {
			storeStatus = "down"
			storeDetails = err.Error()
		}
		services["store"] = entities.ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
