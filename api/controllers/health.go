package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/get-hunter/hero365-app-sub002/api/responses"
	"github.com/get-hunter/hero365-app-sub002/pkg/config"
	"github.com/get-hunter/hero365-app-sub002/pkg/db"
	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
	"github.com/get-hunter/hero365-app-sub002/pkg/logger"
	"github.com/get-hunter/hero365-app-sub002/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hero365-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores and reports per-component status.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hero365-Env", cfg.App.Env)

		components := map[string]string{}
		var failures error

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				components["database"] = "down"
				failures = multierr.Append(failures, err)
			} else {
				components["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				components["redis"] = "down"
				failures = multierr.Append(failures, err)
			} else {
				components["redis"] = "ok"
			}
		}

		if failures != nil {
			if logg != nil {
				logg.Error(r.Context(), "health.ready.failed", failures)
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "components": components})
	}
}
