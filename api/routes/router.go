package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/serviteca/serviteca-backend/api/controllers"
	"github.com/serviteca/serviteca-backend/api/middleware"
	"github.com/serviteca/serviteca-backend/internal/advisors"
	"github.com/serviteca/serviteca-backend/internal/customers"
	"github.com/serviteca/serviteca-backend/internal/inventory"
	"github.com/serviteca/serviteca-backend/internal/sales"
	"github.com/serviteca/serviteca-backend/internal/tires"
	"github.com/serviteca/serviteca-backend/pkg/config"
	"github.com/serviteca/serviteca-backend/pkg/db"
	"github.com/serviteca/serviteca-backend/pkg/logger"
	"github.com/serviteca/serviteca-backend/pkg/metrics"
	pkgredis "github.com/serviteca/serviteca-backend/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        *db.Client
	Redis     *pkgredis.Client
	Registry  *prometheus.Registry
	Tires     tires.Service
	Inventory inventory.Service
	Customers customers.Service
	Advisors  advisors.Service
	Sales     sales.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.DB, redisPinger(deps.Redis), deps.Logger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), deps.Logger, deps.Config.Idempotency))

		r.Route("/tires", func(r chi.Router) {
			r.Post("/", controllers.RegisterTire(deps.Tires, deps.Logger))
			r.Get("/", controllers.ListTires(deps.Tires, deps.Logger))
			r.Get("/{tireId}", controllers.GetTire(deps.Tires, deps.Logger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(deps.Inventory, deps.Logger))
			r.Post("/{tireId}/adjust", controllers.AdjustInventory(deps.Inventory, deps.Logger))
			r.Put("/{tireId}/adjust", controllers.AdjustInventory(deps.Inventory, deps.Logger))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomer(deps.Customers, deps.Logger))
			r.Get("/", controllers.ListCustomers(deps.Customers, deps.Logger))
		})

		r.Route("/advisors", func(r chi.Router) {
			r.Post("/", controllers.CreateAdvisor(deps.Advisors, deps.Logger))
			r.Get("/", controllers.ListAdvisors(deps.Advisors, deps.Logger))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(deps.Sales, deps.Logger))
			r.Get("/", controllers.ListSales(deps.Sales, deps.Logger))
			r.Get("/{saleId}", controllers.GetSale(deps.Sales, deps.Logger))
			r.Get("/{saleId}/line-items", controllers.ListSaleLineItems(deps.Sales, deps.Logger))
		})
	})

	return r
}

// nil interface guards: a nil *Client must stay a nil interface value
func redisPinger(client *pkgredis.Client) db.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
