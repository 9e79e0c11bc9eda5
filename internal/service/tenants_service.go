package service

import (
	"context"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tenantsTracer = otel.Tracer("service/tenants")

const tenantsCacheKey = "tenants"

// TenantsService owns tenant records and their lifecycle.
type TenantsService struct {
	tenants port.TenantStore
	bills   port.BillStore
	cache   port.Cache[[]domain.Tenant]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewTenantsService creates a tenants service.
func NewTenantsService(tenants port.TenantStore, bills port.BillStore, cache port.Cache[[]domain.Tenant], metrics *observability.Metrics, logger *zap.Logger) *TenantsService {
	return &TenantsService{tenants: tenants, bills: bills, cache: cache, metrics: metrics, logger: logger}
}

func (s *TenantsService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	ctx, span := tenantsTracer.Start(ctx, "TenantsService.ListTenants")
	defer span.End()

	if tenants, ok := s.cache.Get(tenantsCacheKey); ok {
		s.metrics.IncrCacheHit("tenants")
		return tenants, nil
	}
	s.metrics.IncrCacheMiss("tenants")

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(tenantsCacheKey, tenants)
	return tenants, nil
}

func (s *TenantsService) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	ctx, span := tenantsTracer.Start(ctx, "TenantsService.GetTenant")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))

	return s.tenants.GetTenant(ctx, tenantID)
}

func validateTenantRequest(req *domain.TenantRequest) error {
	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if req.Unit == "" {
		return &domain.ErrValidation{Field: "unit", Message: "unit is required"}
	}
	if req.RentGross < 0 {
		return &domain.ErrValidation{Field: "rent_gross", Message: "rent_gross cannot be negative"}
	}
	if req.LeaseStart != "" {
		if _, err := time.Parse(dateLayout, req.LeaseStart); err != nil {
			return &domain.ErrValidation{Field: "lease_start", Message: "lease_start must be YYYY-MM-DD"}
		}
	}
	if req.LeaseEnd != "" {
		if _, err := time.Parse(dateLayout, req.LeaseEnd); err != nil {
			return &domain.ErrValidation{Field: "lease_end", Message: "lease_end must be YYYY-MM-DD"}
		}
	}
	return nil
}

func (s *TenantsService) CreateTenant(ctx context.Context, req *domain.TenantRequest) (*domain.Tenant, error) {
	ctx, span := tenantsTracer.Start(ctx, "TenantsService.CreateTenant")
	defer span.End()

	if err := validateTenantRequest(req); err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Unit:              req.Unit,
		Floor:             req.Floor,
		ContactPerson:     req.ContactPerson,
		ContactNumber:     req.ContactNumber,
		Email:             req.Email,
		LeaseStart:        req.LeaseStart,
		LeaseEnd:          req.LeaseEnd,
		PaymentTerms:      req.PaymentTerms,
		EscalationDetails: req.EscalationDetails,
		RentGross:         req.RentGross,
		RentNet:           req.RentNet,
		VAT:               req.VAT,
		EWT:               req.EWT,
		SignageFee:        req.SignageFee,
		TotalDue:          req.TotalDue,
		EscalationRate:    req.EscalationRate,
		VATPercent:        req.VATPercent,
		EWTPercent:        req.EWTPercent,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.tenants.CreateTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(tenantsCacheKey)

	s.logger.Info("tenant created",
		zap.String("tenant_id", created.ID),
		zap.String("name", created.Name),
		zap.String("unit", created.Unit),
	)
	return created, nil
}

func (s *TenantsService) UpdateTenant(ctx context.Context, tenantID string, req *domain.TenantRequest) (*domain.Tenant, error) {
	ctx, span := tenantsTracer.Start(ctx, "TenantsService.UpdateTenant")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))

	if err := validateTenantRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.tenants.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":               req.Name,
		"unit":               req.Unit,
		"floor":              req.Floor,
		"contact_person":     req.ContactPerson,
		"contact_number":     req.ContactNumber,
		"email":              req.Email,
		"lease_start":        req.LeaseStart,
		"lease_end":          req.LeaseEnd,
		"payment_terms":      req.PaymentTerms,
		"escalation_details": req.EscalationDetails,
		"rent_gross":         req.RentGross,
		"rent_net":           req.RentNet,
		"vat":                req.VAT,
		"ewt":                req.EWT,
		"signage_fee":        req.SignageFee,
		"total_due":          req.TotalDue,
		"escalation_rate":    req.EscalationRate,
		"vat_percent":        req.VATPercent,
		"ewt_percent":        req.EWTPercent,
	}

	if err := s.tenants.UpdateTenant(ctx, tenantID, updates); err != nil {
		return nil, err
	}
	s.cache.Delete(tenantsCacheKey)

	return s.tenants.GetTenant(ctx, tenantID)
}

// DeleteTenant removes a tenant and every bill attached to it. Bills
// go first so a store failure can't orphan them.
func (s *TenantsService) DeleteTenant(ctx context.Context, tenantID string) error {
	ctx, span := tenantsTracer.Start(ctx, "TenantsService.DeleteTenant")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))

	if _, err := s.tenants.GetTenant(ctx, tenantID); err != nil {
		return err
	}

	if err := s.bills.DeleteTenantBills(ctx, tenantID); err != nil {
		return err
	}
	if err := s.tenants.DeleteTenant(ctx, tenantID); err != nil {
		return err
	}
	s.cache.Delete(tenantsCacheKey)

	s.logger.Info("tenant deleted", zap.String("tenant_id", tenantID))
	return nil
}
