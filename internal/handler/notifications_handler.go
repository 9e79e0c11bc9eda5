package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Notifications — /v1/notifications
// ============================================================

func listAlertsHandler(svc *service.NotificationsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/notifications")
		defer span.End()

		alerts, err := svc.BuildAlerts(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, alerts)
	}
}

// dispatchEscalationsHandler runs the escalation email sweep on demand.
func dispatchEscalationsHandler(svc *service.NotificationsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/notifications/escalations/dispatch")
		defer span.End()

		sent, err := svc.DispatchEscalationAlerts(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
	}
}
