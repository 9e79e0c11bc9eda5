// Package handler exposes the HTTP API for the admin dashboard.
package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the use-case layer for the router.
type Services struct {
	Tenants       *service.TenantsService
	Billing       *service.BillingService
	Compliance    *service.ComplianceService
	Finance       *service.FinanceService
	Calendar      *service.CalendarService
	Staff         *service.StaffService
	Notifications *service.NotificationsService
	Auth          *service.AuthService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Reads require a valid session; mutations require the admin role.
func NewRouter(svcs Services, store Pinger, metrics *observability.Metrics, logger *zap.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(store, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Public
		r.Post("/auth/login", authLoginHandler(svcs.Auth, logger))

		// Authenticated (any role)
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))

			r.Post("/auth/refresh", authRefreshHandler(svcs.Auth, logger))
			r.Post("/auth/logout", authLogoutHandler(logger))
			r.Get("/auth/me", authMeHandler(logger))

			r.Get("/dashboard/summary", dashboardSummaryHandler(svcs.Billing, logger))
			r.Get("/notifications", listAlertsHandler(svcs.Notifications, logger))
			r.Get("/metrics/billing", billingMetricsHandler(metrics, logger))

			r.Get("/tenants", listTenantsHandler(svcs.Tenants, logger))
			r.Get("/tenants/{tenantId}", getTenantHandler(svcs.Tenants, logger))
			r.Get("/tenants/{tenantId}/bills", listTenantBillsHandler(svcs.Billing, logger))

			r.Get("/bills", listBillsHandler(svcs.Billing, logger))
			r.Get("/bills/export", exportBillsHandler(svcs.Billing, logger))

			r.Get("/requirements", listRequirementsHandler(svcs.Compliance, logger))

			r.Get("/finance/totals", getFinanceTotalsHandler(svcs.Finance, logger))
			r.Get("/finance/transactions", listTransactionsHandler(svcs.Finance, logger))

			r.Get("/events", listEventsHandler(svcs.Calendar, logger))
			r.Get("/staff", listStaffHandler(svcs.Staff, logger))
		})

		// Admin-only mutations
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))
			r.Use(RequireRole(domain.RoleAdmin, logger))

			r.Post("/tenants", createTenantHandler(svcs.Tenants, logger))
			r.Put("/tenants/{tenantId}", updateTenantHandler(svcs.Tenants, logger))
			r.Delete("/tenants/{tenantId}", deleteTenantHandler(svcs.Tenants, logger))

			r.Post("/bills", createBillHandler(svcs.Billing, logger))
			r.Post("/bills/generate", generateBillsHandler(svcs.Billing, logger))
			r.Post("/bills/{billId}/toggle-paid", toggleBillPaidHandler(svcs.Billing, logger))

			r.Post("/requirements", createRequirementHandler(svcs.Compliance, logger))
			r.Post("/requirements/{requirementId}/renew", renewRequirementHandler(svcs.Compliance, logger))
			r.Post("/requirements/{requirementId}/toggle-pin", togglePinRequirementHandler(svcs.Compliance, logger))
			r.Delete("/requirements/{requirementId}", deleteRequirementHandler(svcs.Compliance, logger))

			r.Post("/finance/transactions", createTransactionHandler(svcs.Finance, logger))
			r.Delete("/finance/transactions/{transactionId}", deleteTransactionHandler(svcs.Finance, logger))
			r.Put("/finance/totals/override", setFinanceOverrideHandler(svcs.Finance, logger))
			r.Delete("/finance/totals/override", clearFinanceOverrideHandler(svcs.Finance, logger))

			r.Post("/events", createEventHandler(svcs.Calendar, logger))
			r.Delete("/events/{eventId}", deleteEventHandler(svcs.Calendar, logger))

			r.Post("/staff", createStaffHandler(svcs.Staff, logger))
			r.Put("/staff/{staffId}", updateStaffHandler(svcs.Staff, logger))
			r.Delete("/staff/{staffId}", deleteStaffHandler(svcs.Staff, logger))

			r.Post("/notifications/escalations/dispatch", dispatchEscalationsHandler(svcs.Notifications, logger))
		})
	})

	return r
}
