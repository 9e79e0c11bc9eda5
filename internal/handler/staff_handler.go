package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Staff directory — /v1/staff
// ============================================================

func listStaffHandler(svc *service.StaffService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/staff")
		defer span.End()

		members, err := svc.ListStaff(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func createStaffHandler(svc *service.StaffService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/staff")
		defer span.End()

		var req domain.StaffRequest
		if !decodeBody(w, r, &req) {
			return
		}

		member, err := svc.CreateStaff(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, member)
	}
}

func updateStaffHandler(svc *service.StaffService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/staff/{staffId}")
		defer span.End()

		var req domain.StaffRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := svc.UpdateStaff(ctx, chi.URLParam(r, "staffId"), &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteStaffHandler(svc *service.StaffService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/staff/{staffId}")
		defer span.End()

		if err := svc.DeleteStaff(ctx, chi.URLParam(r, "staffId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
