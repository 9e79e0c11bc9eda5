package service_test

import (
	"context"
	"testing"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

func TestClassifyRequirementStatus_Boundaries(t *testing.T) {
	today := mustDate("2026-01-01")

	cases := []struct {
		name   string
		expiry string
		want   domain.RequirementStatus
	}{
		{"expires in 30 days", "2026-01-31", domain.StatusExpiringSoon},
		{"expires in 31 days", "2026-02-01", domain.StatusActive},
		{"expired yesterday", "2025-12-31", domain.StatusExpired},
		{"expires today", "2026-01-01", domain.StatusExpiringSoon},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &domain.BuildingRequirement{ExpiryDate: tc.expiry}
			got := service.ClassifyRequirementStatus(req, today)
			if got != tc.want {
				t.Errorf("expiry %s: expected %s, got %s", tc.expiry, tc.want, got)
			}
		})
	}
}

func TestClassifyRequirementStatus_InactivePinWins(t *testing.T) {
	req := &domain.BuildingRequirement{
		ExpiryDate: "2020-01-01", // long expired
		Status:     domain.StatusInactive,
	}
	got := service.ClassifyRequirementStatus(req, mustDate("2026-01-01"))
	if got != domain.StatusInactive {
		t.Errorf("expected Inactive pin to win, got %s", got)
	}
}

func TestClassifyRequirementStatus_MalformedDateKeepsStored(t *testing.T) {
	req := &domain.BuildingRequirement{
		ExpiryDate: "sometime next year",
		Status:     domain.StatusActive,
	}
	got := service.ClassifyRequirementStatus(req, mustDate("2026-01-01"))
	if got != domain.StatusActive {
		t.Errorf("expected stored status kept, got %s", got)
	}
}

func TestListRequirements_RecomputesStatus(t *testing.T) {
	store := &fakeRequirementStore{reqs: []domain.BuildingRequirement{
		{ID: "req-1", Name: "Fire Safety Certificate", ExpiryDate: "2026-01-20", Status: domain.StatusActive},
	}}
	svc := service.NewComplianceService(store, &fakeDocStore{}, fakeClock{now: mustDate("2026-01-01")}, zap.NewNop())

	reqs, err := svc.ListRequirements(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reqs[0].Status != domain.StatusExpiringSoon {
		t.Errorf("expected Expiring Soon, got %s", reqs[0].Status)
	}
}

func TestCreateRequirement_ComputesExpiry(t *testing.T) {
	store := &fakeRequirementStore{}
	svc := service.NewComplianceService(store, &fakeDocStore{}, fakeClock{now: mustDate("2026-01-01")}, zap.NewNop())

	created, err := svc.CreateRequirement(context.Background(), &domain.RequirementRequest{
		Name:          "Pollution Control Permit",
		IssuedDate:    "2025-06-15",
		ValidityYears: 2,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ExpiryDate != "2027-06-15" {
		t.Errorf("expected expiry 2027-06-15, got %s", created.ExpiryDate)
	}
	if created.Status != domain.StatusActive {
		t.Errorf("expected Active, got %s", created.Status)
	}
}

func TestRenewRequirement_UploadsDocumentAndExtendsExpiry(t *testing.T) {
	store := &fakeRequirementStore{reqs: []domain.BuildingRequirement{
		{ID: "req-1", Name: "Fire Safety Certificate", IssuedDate: "2023-02-01", ValidityYears: 3, ExpiryDate: "2026-02-01"},
	}}
	docs := &fakeDocStore{}
	svc := service.NewComplianceService(store, docs, fakeClock{now: mustDate("2026-01-15")}, zap.NewNop())

	renewed, err := svc.RenewRequirement(context.Background(), "req-1", "2026-01-15",
		[]byte("scanned pdf"), "fire cert.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if renewed.ExpiryDate != "2029-01-15" {
		t.Errorf("expected expiry 2029-01-15, got %s", renewed.ExpiryDate)
	}
	if len(docs.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(docs.uploads))
	}
	if renewed.DocumentURL == "" {
		t.Error("expected document URL persisted")
	}
}

func TestRenewRequirement_NoDocumentSkipsUpload(t *testing.T) {
	store := &fakeRequirementStore{reqs: []domain.BuildingRequirement{
		{ID: "req-1", ValidityYears: 1, ExpiryDate: "2026-02-01"},
	}}
	docs := &fakeDocStore{}
	svc := service.NewComplianceService(store, docs, fakeClock{now: mustDate("2026-01-15")}, zap.NewNop())

	if _, err := svc.RenewRequirement(context.Background(), "req-1", "2026-01-15", nil, "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(docs.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(docs.uploads))
	}
}

func TestTogglePin(t *testing.T) {
	store := &fakeRequirementStore{reqs: []domain.BuildingRequirement{
		{ID: "req-1", ExpiryDate: "2030-01-01", Status: domain.StatusActive},
	}}
	svc := service.NewComplianceService(store, &fakeDocStore{}, fakeClock{now: mustDate("2026-01-01")}, zap.NewNop())

	req, err := svc.TogglePin(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Status != domain.StatusInactive {
		t.Errorf("expected Inactive after pin, got %s", req.Status)
	}

	req, err = svc.TogglePin(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Status != domain.StatusActive {
		t.Errorf("expected Active after unpin, got %s", req.Status)
	}
}
