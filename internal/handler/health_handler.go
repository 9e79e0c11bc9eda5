package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"

	"go.uber.org/zap"
)

// Pinger verifies a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ============================================================
// Operational endpoints
// ============================================================

func healthzHandler(store Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := domain.HealthStatus{Status: "healthy"}

		start := time.Now()
		supabase := domain.ServiceHealth{
			Name:        "supabase",
			Status:      "healthy",
			LastChecked: start.UTC().Format(time.RFC3339),
		}
		if err := store.Ping(ctx); err != nil {
			logger.Warn("healthz: supabase unreachable", zap.Error(err))
			supabase.Status = "unhealthy"
			status.Status = "degraded"
		}
		supabase.LatencyMs = time.Since(start).Milliseconds()
		status.Services = append(status.Services, supabase)

		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func billingMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetBillingSnapshot())
	}
}
