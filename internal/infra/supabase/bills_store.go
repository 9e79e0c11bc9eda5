package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Bills store — implements port.BillStore
// ============================================================

func (c *Client) ListBills(ctx context.Context) ([]domain.BillRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListBills")
	defer span.End()

	body, err := c.doGet(ctx, "bills?order=month.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}

	rows, err := decodeRows[domain.BillRecord](body)
	if err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}
	return rows, nil
}

func (c *Client) ListTenantBills(ctx context.Context, tenantID string) ([]domain.BillRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTenantBills")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("bills?tenant_id=eq.%s&order=month.desc", tenantID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}

	rows, err := decodeRows[domain.BillRecord](body)
	if err != nil {
		return nil, fmt.Errorf("decode tenant bills: %w", err)
	}
	return rows, nil
}

func (c *Client) GetBill(ctx context.Context, billID string) (*domain.BillRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetBill")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("bills?id=eq.%s&limit=1", billID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}

	rows, err := decodeRows[domain.BillRecord](body)
	if err != nil {
		return nil, fmt.Errorf("decode bill: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "bill", ID: billID}
	}
	return &rows[0], nil
}

func (c *Client) CreateBill(ctx context.Context, bill *domain.BillRecord) (*domain.BillRecord, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateBill")
	defer span.End()

	body, err := c.doPost(ctx, "bills", bill, "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}

	rows, err := decodeRows[domain.BillRecord](body)
	if err != nil {
		return nil, fmt.Errorf("decode bill insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from bills insert")
	}
	return &rows[0], nil
}

// InsertBills bulk-inserts generated bills. The bills table has a
// unique index on (tenant_id, month); resolution=ignore-duplicates
// makes a concurrent generator run a no-op for colliding rows instead
// of a failure. Returns the number of rows actually inserted.
func (c *Client) InsertBills(ctx context.Context, bills []domain.BillRecord) (int, error) {
	ctx, span := tracer.Start(ctx, "Supabase.InsertBills")
	defer span.End()

	if len(bills) == 0 {
		return 0, nil
	}

	body, err := c.doPost(ctx, "bills?on_conflict=tenant_id,month", bills,
		"return=representation,resolution=ignore-duplicates")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}

	rows, err := decodeRows[domain.BillRecord](body)
	if err != nil {
		return 0, fmt.Errorf("decode bills bulk insert: %w", err)
	}
	if len(rows) < len(bills) {
		c.logger.Info("supabase: some generated bills already existed",
			zap.Int("requested", len(bills)),
			zap.Int("inserted", len(rows)),
		)
	}
	return len(rows), nil
}

func (c *Client) UpdateBill(ctx context.Context, billID string, updates map[string]any) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateBill")
	defer span.End()

	if err := c.doPatch(ctx, fmt.Sprintf("bills?id=eq.%s", billID), updates); err != nil {
		return &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}
	return nil
}

// DeleteTenantBills removes all bills for a tenant. Called before the
// tenant row itself is deleted so removal cascades.
func (c *Client) DeleteTenantBills(ctx context.Context, tenantID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTenantBills")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("bills?tenant_id=eq.%s", tenantID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/bills", Err: err}
	}
	return nil
}
