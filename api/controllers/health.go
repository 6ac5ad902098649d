package controllers

import (
	"net/http"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/pkg/config"
	"github.com/opencourier/client-provider/pkg/db"
	"github.com/opencourier/client-provider/pkg/logger"
	"github.com/opencourier/client-provider/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Provider-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasource and, when configured, the cache.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cacheP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Provider-Env", cfg.App.Env)

		checks := map[string]func() error{}
		if dbP != nil {
			checks["database"] = func() error { return dbP.Ping(r.Context()) }
		}
		if cacheP != nil {
			checks["redis"] = func() error { return cacheP.Ping(r.Context()) }
		}

		for name, check := range checks {
			if err := check(); err != nil {
				logError(r.Context(), logg, "readiness check failed", err)
				responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"failed": name,
				})
				return
			}
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
