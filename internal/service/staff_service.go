package service

import (
	"context"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var staffTracer = otel.Tracer("service/staff")

// StaffService owns the building staff directory.
type StaffService struct {
	store  port.StaffStore
	logger *zap.Logger
}

// NewStaffService creates a staff service.
func NewStaffService(store port.StaffStore, logger *zap.Logger) *StaffService {
	return &StaffService{store: store, logger: logger}
}

func (s *StaffService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	ctx, span := staffTracer.Start(ctx, "StaffService.ListStaff")
	defer span.End()

	return s.store.ListStaff(ctx)
}

func (s *StaffService) CreateStaff(ctx context.Context, req *domain.StaffRequest) (*domain.Staff, error) {
	ctx, span := staffTracer.Start(ctx, "StaffService.CreateStaff")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if req.Role == "" {
		return nil, &domain.ErrValidation{Field: "role", Message: "role is required"}
	}

	member := &domain.Staff{
		Name:     req.Name,
		Role:     req.Role,
		Info:     req.Info,
		IconName: req.IconName,
		Color:    req.Color,
		Bg:       req.Bg,
		ImageURL: req.ImageURL,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	return s.store.CreateStaff(ctx, member)
}

func (s *StaffService) UpdateStaff(ctx context.Context, staffID string, req *domain.StaffRequest) error {
	ctx, span := staffTracer.Start(ctx, "StaffService.UpdateStaff")
	defer span.End()

	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}

	updates := map[string]any{
		"name":     req.Name,
		"role":     req.Role,
		"info":     req.Info,
		"iconName": req.IconName,
		"color":    req.Color,
		"bg":       req.Bg,
		"imageUrl": req.ImageURL,
		"email":    req.Email,
		"phone":    req.Phone,
	}
	return s.store.UpdateStaff(ctx, staffID, updates)
}

func (s *StaffService) DeleteStaff(ctx context.Context, staffID string) error {
	ctx, span := staffTracer.Start(ctx, "StaffService.DeleteStaff")
	defer span.End()

	return s.store.DeleteStaff(ctx, staffID)
}
