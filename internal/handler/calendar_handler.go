package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Calendar — /v1/events
// ============================================================

func listEventsHandler(svc *service.CalendarService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/events")
		defer span.End()

		events, err := svc.ListEvents(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func createEventHandler(svc *service.CalendarService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/events")
		defer span.End()

		var req domain.EventRequest
		if !decodeBody(w, r, &req) {
			return
		}

		event, err := svc.CreateEvent(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, event)
	}
}

func deleteEventHandler(svc *service.CalendarService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/events/{eventId}")
		defer span.End()

		if err := svc.DeleteEvent(ctx, chi.URLParam(r, "eventId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
