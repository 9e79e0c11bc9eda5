package handler

import (
	"net/http"
	"strconv"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Bills — /v1/bills
// ============================================================

func listBillsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills")
		defer span.End()

		bills, err := svc.ListBills(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, bills)
	}
}

func listTenantBillsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/tenants/{tenantId}/bills")
		defer span.End()

		bills, err := svc.ListTenantBills(ctx, chi.URLParam(r, "tenantId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, bills)
	}
}

func createBillHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bills")
		defer span.End()

		var req domain.BillRequest
		if !decodeBody(w, r, &req) {
			return
		}

		bill, err := svc.CreateBill(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, bill)
	}
}

func toggleBillPaidHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bills/{billId}/toggle-paid")
		defer span.End()

		bill, err := svc.ToggleBillPaid(ctx, chi.URLParam(r, "billId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, bill)
	}
}

// generateBillsHandler triggers the backlog generator. ?force=true
// ignores the monthly marker, for reruns after fixing tenant data.
func generateBillsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/bills/generate")
		defer span.End()

		force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

		result, err := svc.RunBacklogGeneration(ctx, force)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func exportBillsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/bills/export")
		defer span.End()

		data, err := svc.ExportCSV(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="bills.csv"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func dashboardSummaryHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard/summary")
		defer span.End()

		summary, err := svc.DashboardSummary(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
