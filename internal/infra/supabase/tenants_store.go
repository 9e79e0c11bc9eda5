package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Tenants store — implements port.TenantStore
// ============================================================

func (c *Client) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTenants")
	defer span.End()

	body, err := c.doGet(ctx, "tenants?order=name.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/tenants", Err: err}
	}

	rows, err := decodeRows[domain.Tenant](body)
	if err != nil {
		return nil, fmt.Errorf("decode tenants: %w", err)
	}
	return rows, nil
}

func (c *Client) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTenant")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("tenants?id=eq.%s&limit=1", tenantID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/tenants", Err: err}
	}

	rows, err := decodeRows[domain.Tenant](body)
	if err != nil {
		return nil, fmt.Errorf("decode tenant: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "tenant", ID: tenantID}
	}
	return &rows[0], nil
}

func (c *Client) CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTenant")
	defer span.End()

	body, err := c.doPost(ctx, "tenants", tenant, "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/tenants", Err: err}
	}

	rows, err := decodeRows[domain.Tenant](body)
	if err != nil {
		return nil, fmt.Errorf("decode tenant insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from tenants insert")
	}
	return &rows[0], nil
}

func (c *Client) UpdateTenant(ctx context.Context, tenantID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTenant")
	defer span.End()

	if err := c.doPatch(ctx, fmt.Sprintf("tenants?id=eq.%s", tenantID), updates); err != nil {
		return &domain.ErrExternalService{Service: "supabase/tenants", Err: err}
	}
	return nil
}

func (c *Client) DeleteTenant(ctx context.Context, tenantID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTenant")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("tenants?id=eq.%s", tenantID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/tenants", Err: err}
	}
	return nil
}
