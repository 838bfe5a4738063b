package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merodoctor/merodoctor-backend/api/controllers"
	"github.com/merodoctor/merodoctor-backend/api/middleware"
	appointmentsvc "github.com/merodoctor/merodoctor-backend/internal/appointments"
	cartsvc "github.com/merodoctor/merodoctor-backend/internal/cart"
	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	ordersvc "github.com/merodoctor/merodoctor-backend/internal/orders"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	subscriptionsvc "github.com/merodoctor/merodoctor-backend/internal/subscriptions"
	"github.com/merodoctor/merodoctor-backend/internal/triage"
	"github.com/merodoctor/merodoctor-backend/pkg/config"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
	"github.com/merodoctor/merodoctor-backend/pkg/metrics"
)

// Deps bundles everything the router mounts. Pinger entries feed the
// readiness probe; a nil entry is skipped.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Pingers  map[string]controllers.Pinger
	Registry *prometheus.Registry

	HTTPMetrics *metrics.HTTPMetrics

	Sessions      *session.Manager
	Catalog       catalog.Service
	Triage        triage.Service
	Cart          cartsvc.Service
	Orders        ordersvc.Service
	Subscriptions subscriptionsvc.Service
	Appointments  appointmentsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Post("/symptoms/analyze", controllers.AnalyzeSymptoms(deps.Triage, logg))

		r.Route("/medicines", func(r chi.Router) {
			r.Get("/", controllers.ListMedicines(deps.Catalog, logg))
			r.Get("/{medicineKey}", controllers.GetMedicine(deps.Catalog, logg))
		})
		r.Get("/dosage-options", controllers.ListDosageOptions())

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", controllers.ListDoctors(deps.Catalog, logg))
			r.Get("/{doctorId}", controllers.GetDoctor(deps.Catalog, logg))
			r.Get("/{doctorId}/quote", controllers.AppointmentQuote(deps.Appointments, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Patch("/items", controllers.CartUpdateItem(deps.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/summary", controllers.CheckoutSummary(deps.Orders, logg))
			r.Post("/", controllers.Checkout(deps.Orders, logg))
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/plans", controllers.ListPlans(deps.Subscriptions, logg))
			r.Get("/", controllers.SubscriptionFetch(deps.Subscriptions, logg))
			r.Post("/", controllers.Subscribe(deps.Subscriptions, logg))
		})

		r.Post("/appointments", controllers.BookAppointment(deps.Appointments, logg))

		r.Get("/history", controllers.History(deps.Sessions, logg))
	})

	return r
}
