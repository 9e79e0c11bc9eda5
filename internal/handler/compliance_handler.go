package handler

import (
	"io"
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Compliance document uploads are capped at 10 MiB.
const maxDocumentSize = 10 << 20

// ============================================================
// Compliance requirements — /v1/requirements
// ============================================================

func listRequirementsHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/requirements")
		defer span.End()

		reqs, err := svc.ListRequirements(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}

func createRequirementHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/requirements")
		defer span.End()

		var req domain.RequirementRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateRequirement(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// renewRequirementHandler accepts multipart form data: an issued_date
// field and an optional document file to upload alongside the renewal.
func renewRequirementHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/requirements/{requirementId}/renew")
		defer span.End()

		if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		issuedDate := r.FormValue("issued_date")
		if issuedDate == "" {
			writeError(w, http.StatusBadRequest, "issued_date is required")
			return
		}

		var document []byte
		var filename, contentType string
		if file, header, err := r.FormFile("document"); err == nil {
			defer file.Close()
			document, err = io.ReadAll(io.LimitReader(file, maxDocumentSize))
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read document")
				return
			}
			filename = header.Filename
			contentType = header.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
		}

		renewed, err := svc.RenewRequirement(ctx, chi.URLParam(r, "requirementId"), issuedDate, document, filename, contentType)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, renewed)
	}
}

func togglePinRequirementHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/requirements/{requirementId}/toggle-pin")
		defer span.End()

		req, err := svc.TogglePin(ctx, chi.URLParam(r, "requirementId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func deleteRequirementHandler(svc *service.ComplianceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/requirements/{requirementId}")
		defer span.End()

		if err := svc.DeleteRequirement(ctx, chi.URLParam(r, "requirementId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
