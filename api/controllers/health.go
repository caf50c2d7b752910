package controllers

import (
	"context"
	"net/http"

	"github.com/serviteca/serviteca-backend/api/responses"
	"github.com/serviteca/serviteca-backend/pkg/config"
	"github.com/serviteca/serviteca-backend/pkg/db"
	pkgerrors "github.com/serviteca/serviteca-backend/pkg/errors"
	"github.com/serviteca/serviteca-backend/pkg/logger"
)

var healthTables = []string{"tires", "inventory_records", "customers", "advisors", "sales", "sale_line_items"}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Serviteca-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the datasources and reports per-table row counts, the
// same snapshot the original console showed on startup.
func HealthReady(cfg *config.Config, database *db.Client, cache db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Serviteca-Env", cfg.App.Env)

		if database == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database unavailable"))
			return
		}
		if err := database.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
		}

		counts, err := tableCounts(r.Context(), database)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count tables"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"tables": counts,
		})
	}
}

func tableCounts(ctx context.Context, database *db.Client) (map[string]int64, error) {
	counts := make(map[string]int64, len(healthTables))
	for _, table := range healthTables {
		var count int64
		if err := database.Raw(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count).Error; err != nil {
			return nil, err
		}
		counts[table] = count
	}
	return counts, nil
}
