package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const apiVersion = "1.0.0"

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// RateLimiter is optional; nil disables per-IP limiting.
	RateLimiter *kit.IPRateLimiter
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	setupMiddleware(r, s, deps)
	setupMetrics(r, s, deps)

	r.Mount("/", s.Routes())
	return r
}

func setupMiddleware(r *chi.Mux, s *Server, deps HTTPDeps) {
	r.Use(kit.RequestID)
	r.Use(kit.Logging(deps.Log))
	r.Use(kit.Recoverer(deps.Log, s.ExposeErrors))
	r.Use(kit.CORS)
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePattern))

	if counter, ok := s.Store.(interface{ Len() int }); ok {
		deps.Registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "catalog_products",
				Help: "Products currently held by the store",
			},
			func() float64 { return float64(counter.Len()) },
		))
	}

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func index(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Product API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"GET /api/products":               "Get a list of all products (optional ?page=&limit=)",
			"GET /api/products/search?q=term": "Search products by name or description",
			"GET /api/products/:id":           "Get a single product by ID",
			"POST /api/products":              "Add a new product",
			"PUT /api/products/:id":           "Update an existing product",
			"DELETE /api/products/:id":        "Delete a product by ID",
		},
	})
}
