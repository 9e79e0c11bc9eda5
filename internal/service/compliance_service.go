package service

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var complianceTracer = otel.Tracer("service/compliance")

// ComplianceService tracks the building's renewable certificates and
// derives their display status from the expiry date on every read.
type ComplianceService struct {
	store  port.RequirementStore
	docs   port.DocumentStore
	clock  port.Clock
	logger *zap.Logger
}

// NewComplianceService creates a compliance service.
func NewComplianceService(store port.RequirementStore, docs port.DocumentStore, clock port.Clock, logger *zap.Logger) *ComplianceService {
	return &ComplianceService{store: store, docs: docs, clock: clock, logger: logger}
}

// ClassifyRequirementStatus derives the display status of a
// requirement as of today. An Inactive pin is authoritative and wins
// over any date math. A malformed expiry date keeps whatever status is
// stored rather than guessing.
func ClassifyRequirementStatus(req *domain.BuildingRequirement, today time.Time) domain.RequirementStatus {
	if req.Status == domain.StatusInactive {
		return domain.StatusInactive
	}

	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return req.Status
	}

	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(math.Ceil(expiry.Sub(todayMidnight).Hours() / 24))

	switch {
	case daysLeft < 0:
		return domain.StatusExpired
	case daysLeft <= domain.ExpiryWarningDays:
		return domain.StatusExpiringSoon
	default:
		return domain.StatusActive
	}
}

// ListRequirements returns every requirement with its status
// recomputed as of today.
func (s *ComplianceService) ListRequirements(ctx context.Context) ([]domain.BuildingRequirement, error) {
	ctx, span := complianceTracer.Start(ctx, "ComplianceService.ListRequirements")
	defer span.End()

	reqs, err := s.store.ListRequirements(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	for i := range reqs {
		reqs[i].Status = ClassifyRequirementStatus(&reqs[i], today)
	}
	return reqs, nil
}

// CreateRequirement records a new certificate. The expiry date is
// computed from the issue date and validity when not supplied.
func (s *ComplianceService) CreateRequirement(ctx context.Context, req *domain.RequirementRequest) (*domain.BuildingRequirement, error) {
	ctx, span := complianceTracer.Start(ctx, "ComplianceService.CreateRequirement")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	issued, err := time.Parse(dateLayout, req.IssuedDate)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "issued_date", Message: "issued_date must be YYYY-MM-DD"}
	}
	if req.ValidityYears <= 0 {
		return nil, &domain.ErrValidation{Field: "validity_years", Message: "validity_years must be positive"}
	}

	expiry := req.ExpiryDate
	if expiry == "" {
		expiry = issued.AddDate(req.ValidityYears, 0, 0).Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, expiry); err != nil {
		return nil, &domain.ErrValidation{Field: "expiry_date", Message: "expiry_date must be YYYY-MM-DD"}
	}

	requirement := &domain.BuildingRequirement{
		Name:          req.Name,
		IssuedDate:    req.IssuedDate,
		ValidityYears: req.ValidityYears,
		ExpiryDate:    expiry,
	}
	requirement.Status = ClassifyRequirementStatus(requirement, s.clock.Now())

	return s.store.CreateRequirement(ctx, requirement)
}

// RenewRequirement re-issues a certificate: new issue date, new expiry
// one validity period out, and optionally a scanned document uploaded
// to storage. The document upload happens first so a storage failure
// never leaves a renewed record without its scan.
func (s *ComplianceService) RenewRequirement(ctx context.Context, reqID, issuedDate string, document []byte, filename, contentType string) (*domain.BuildingRequirement, error) {
	ctx, span := complianceTracer.Start(ctx, "ComplianceService.RenewRequirement")
	defer span.End()
	span.SetAttributes(attribute.String("requirement.id", reqID))

	req, err := s.store.GetRequirement(ctx, reqID)
	if err != nil {
		return nil, err
	}

	issued, err := time.Parse(dateLayout, issuedDate)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "issued_date", Message: "issued_date must be YYYY-MM-DD"}
	}
	expiry := issued.AddDate(req.ValidityYears, 0, 0).Format(dateLayout)

	updates := map[string]any{
		"issuedDate": issuedDate,
		"expiryDate": expiry,
		"status":     string(domain.StatusActive),
	}

	if len(document) > 0 {
		object := fmt.Sprintf("%s/%s-%s", reqID, issuedDate, sanitizeObjectName(filename))
		url, err := s.docs.UploadDocument(ctx, object, contentType, document)
		if err != nil {
			return nil, err
		}
		updates["documentUrl"] = url
	}

	if err := s.store.UpdateRequirement(ctx, reqID, updates); err != nil {
		return nil, err
	}

	s.logger.Info("requirement renewed",
		zap.String("requirement_id", reqID),
		zap.String("issued_date", issuedDate),
		zap.String("expiry_date", expiry),
	)

	return s.store.GetRequirement(ctx, reqID)
}

// TogglePin flips a requirement between Inactive and its derived
// status. Pinning records today as the activation date of the pin.
func (s *ComplianceService) TogglePin(ctx context.Context, reqID string) (*domain.BuildingRequirement, error) {
	ctx, span := complianceTracer.Start(ctx, "ComplianceService.TogglePin")
	defer span.End()

	req, err := s.store.GetRequirement(ctx, reqID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	updates := map[string]any{}
	if req.Status == domain.StatusInactive {
		req.Status = domain.StatusActive
		req.Status = ClassifyRequirementStatus(req, today)
		updates["status"] = string(req.Status)
		updates["activationDate"] = today.Format(dateLayout)
	} else {
		req.Status = domain.StatusInactive
		updates["status"] = string(domain.StatusInactive)
	}

	if err := s.store.UpdateRequirement(ctx, reqID, updates); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *ComplianceService) DeleteRequirement(ctx context.Context, reqID string) error {
	ctx, span := complianceTracer.Start(ctx, "ComplianceService.DeleteRequirement")
	defer span.End()

	return s.store.DeleteRequirement(ctx, reqID)
}

// sanitizeObjectName strips path separators and spaces so uploaded
// filenames are valid storage object keys.
func sanitizeObjectName(name string) string {
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "document"
	}
	return name
}
