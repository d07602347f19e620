package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SyN415/local-marketplace-lister-sub000/api/controllers"
	"github.com/SyN415/local-marketplace-lister-sub000/api/middleware"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	resaleService controllers.ResaleService,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/resale", func(r chi.Router) {
		r.Post("/analyze", controllers.AnalyzeListing(resaleService, logg))
		r.Post("/extract", controllers.ExtractComponents(resaleService, logg))
		r.Post("/pc-build-check", controllers.PCBuildCheck(resaleService, logg))
		r.Get("/analyses", controllers.ListAnalyses(resaleService, logg))
		r.Get("/analyses/{id}", controllers.GetAnalysis(resaleService, logg))
	})

	return r
}
