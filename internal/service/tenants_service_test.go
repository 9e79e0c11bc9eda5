package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/cache"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

func newTenantsService(tenants *fakeTenantStore, bills *fakeBillStore) *service.TenantsService {
	return service.NewTenantsService(
		tenants, bills,
		cache.New[[]domain.Tenant](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestCreateTenant_AssignsIDAndInvalidatesCache(t *testing.T) {
	store := &fakeTenantStore{tenants: []domain.Tenant{{ID: "t-1", Name: "Alpha"}}}
	svc := newTenantsService(store, &fakeBillStore{})

	// Warm the cache.
	if _, err := svc.ListTenants(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	created, err := svc.CreateTenant(context.Background(), &domain.TenantRequest{
		Name: "Beta Foods", Unit: "2F-01", RentGross: 15000, LeaseStart: "2026-01-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}

	tenants, err := svc.ListTenants(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tenants) != 2 {
		t.Errorf("expected fresh list of 2 after create, got %d", len(tenants))
	}
}

func TestCreateTenant_Validation(t *testing.T) {
	svc := newTenantsService(&fakeTenantStore{}, &fakeBillStore{})

	cases := []struct {
		name string
		req  domain.TenantRequest
	}{
		{"missing name", domain.TenantRequest{Unit: "2F-01"}},
		{"missing unit", domain.TenantRequest{Name: "Beta"}},
		{"negative rent", domain.TenantRequest{Name: "Beta", Unit: "2F-01", RentGross: -1}},
		{"bad lease start", domain.TenantRequest{Name: "Beta", Unit: "2F-01", LeaseStart: "Jan 2026"}},
		{"bad lease end", domain.TenantRequest{Name: "Beta", Unit: "2F-01", LeaseEnd: "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTenant(context.Background(), &tc.req)
			var verr *domain.ErrValidation
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDeleteTenant_RemovesBillsFirst(t *testing.T) {
	store := &fakeTenantStore{tenants: []domain.Tenant{{ID: "t-1", Name: "Alpha"}}}
	bills := &fakeBillStore{}
	svc := newTenantsService(store, bills)

	if err := svc.DeleteTenant(context.Background(), "t-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bills.deletedFor) != 1 || bills.deletedFor[0] != "t-1" {
		t.Errorf("expected bills deleted for t-1, got %v", bills.deletedFor)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "t-1" {
		t.Errorf("expected tenant t-1 deleted, got %v", store.deleted)
	}
}

func TestDeleteTenant_UnknownTenant(t *testing.T) {
	bills := &fakeBillStore{}
	svc := newTenantsService(&fakeTenantStore{}, bills)

	err := svc.DeleteTenant(context.Background(), "ghost")
	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if len(bills.deletedFor) != 0 {
		t.Error("expected no bill deletion for unknown tenant")
	}
}

func TestUpdateTenant_ReturnsFreshRecord(t *testing.T) {
	store := &fakeTenantStore{tenants: []domain.Tenant{{ID: "t-1", Name: "Alpha", Unit: "1F-01"}}}
	svc := newTenantsService(store, &fakeBillStore{})

	got, err := svc.UpdateTenant(context.Background(), "t-1", &domain.TenantRequest{
		Name: "Alpha Traders", Unit: "1F-01", RentGross: 20000,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != "t-1" {
		t.Errorf("expected record t-1, got %s", got.ID)
	}
}
