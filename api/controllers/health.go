package controllers

import (
	"net/http"

	"github.com/SyN415/local-marketplace-lister-sub000/api/responses"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db"
	pkgerrors "github.com/SyN415/local-marketplace-lister-sub000/pkg/errors"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live", "env": cfg.App.Env})
	}
}

// HealthReady verifies the dependencies an analysis actually needs. The
// database is optional when persistence is disabled.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
				return
			}
			checks["database"] = "ok"
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
