package handler

import (
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Tenants — /v1/tenants
// ============================================================

func listTenantsHandler(svc *service.TenantsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tenants")
		defer span.End()

		tenants, err := svc.ListTenants(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tenants)
	}
}

func getTenantHandler(svc *service.TenantsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tenants/{tenantId}")
		defer span.End()

		tenant, err := svc.GetTenant(ctx, chi.URLParam(r, "tenantId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

func createTenantHandler(svc *service.TenantsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/tenants")
		defer span.End()

		var req domain.TenantRequest
		if !decodeBody(w, r, &req) {
			return
		}

		tenant, err := svc.CreateTenant(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, tenant)
	}
}

func updateTenantHandler(svc *service.TenantsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/tenants/{tenantId}")
		defer span.End()

		var req domain.TenantRequest
		if !decodeBody(w, r, &req) {
			return
		}

		tenant, err := svc.UpdateTenant(ctx, chi.URLParam(r, "tenantId"), &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

func deleteTenantHandler(svc *service.TenantsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/tenants/{tenantId}")
		defer span.End()

		if err := svc.DeleteTenant(ctx, chi.URLParam(r, "tenantId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
