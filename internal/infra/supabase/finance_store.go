package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Cash ledger and finance totals store — implements port.CashStore
// ============================================================

// cashTransactionRow maps the cash_transactions table, whose
// referenceNo column is camelCase like the other frontend-era tables.
type cashTransactionRow struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ReferenceNo string  `json:"referenceNo,omitempty"`
}

func (r cashTransactionRow) toDomain() domain.CashTransaction {
	return domain.CashTransaction{
		ID:          r.ID,
		Date:        r.Date,
		Type:        r.Type,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		ReferenceNo: r.ReferenceNo,
	}
}

type financeOverrideRow struct {
	ID                 string  `json:"id"`
	CashInBank         float64 `json:"cash_in_bank"`
	TotalReceipts      float64 `json:"total_receipts"`
	TotalDisbursements float64 `json:"total_disbursements"`
	IsManualOverride   bool    `json:"is_manual_override"`
	UpdatedAt          string  `json:"updated_at,omitempty"`
}

func (c *Client) ListCashTransactions(ctx context.Context) ([]domain.CashTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCashTransactions")
	defer span.End()

	body, err := c.doGet(ctx, "cash_transactions?order=date.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/cash_transactions", Err: err}
	}

	rows, err := decodeRows[cashTransactionRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode cash transactions: %w", err)
	}

	txns := make([]domain.CashTransaction, 0, len(rows))
	for _, r := range rows {
		txns = append(txns, r.toDomain())
	}
	return txns, nil
}

func (c *Client) CreateCashTransaction(ctx context.Context, txn *domain.CashTransaction) (*domain.CashTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCashTransaction")
	defer span.End()

	row := map[string]any{
		"date":        txn.Date,
		"type":        txn.Type,
		"amount":      txn.Amount,
		"category":    txn.Category,
		"description": txn.Description,
	}
	if txn.ReferenceNo != "" {
		row["referenceNo"] = txn.ReferenceNo
	}

	body, err := c.doPost(ctx, "cash_transactions", row, "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/cash_transactions", Err: err}
	}

	rows, err := decodeRows[cashTransactionRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode cash transaction insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from cash_transactions insert")
	}
	created := rows[0].toDomain()
	return &created, nil
}

func (c *Client) DeleteCashTransaction(ctx context.Context, txnID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCashTransaction")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("cash_transactions?id=eq.%s", txnID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/cash_transactions", Err: err}
	}
	return nil
}

// GetFinanceOverride returns the persisted totals row when a manual
// override is active, nil otherwise.
func (c *Client) GetFinanceOverride(ctx context.Context) (*domain.FinanceOverride, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetFinanceOverride")
	defer span.End()

	body, err := c.doGet(ctx, "finance_totals?is_manual_override=eq.true&limit=1")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/finance_totals", Err: err}
	}

	rows, err := decodeRows[financeOverrideRow](body)
	if err != nil {
		return nil, fmt.Errorf("decode finance totals: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	r := rows[0]
	ov := &domain.FinanceOverride{
		ID:                 r.ID,
		CashInBank:         r.CashInBank,
		TotalReceipts:      r.TotalReceipts,
		TotalDisbursements: r.TotalDisbursements,
		IsManualOverride:   r.IsManualOverride,
	}
	if r.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, r.UpdatedAt); err == nil {
			ov.UpdatedAt = ts
		}
	}
	return ov, nil
}

func (c *Client) SetFinanceOverride(ctx context.Context, req *domain.FinanceOverrideRequest) error {
	ctx, span := tracer.Start(ctx, "Supabase.SetFinanceOverride")
	defer span.End()

	row := map[string]any{
		"id":                  "totals",
		"cash_in_bank":        req.CashInBank,
		"total_receipts":      req.TotalReceipts,
		"total_disbursements": req.TotalDisbursements,
		"is_manual_override":  true,
		"updated_at":          time.Now().UTC().Format(time.RFC3339),
	}
	_, err := c.doPost(ctx, "finance_totals?on_conflict=id", row, "return=minimal,resolution=merge-duplicates")
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/finance_totals", Err: err}
	}
	return nil
}

func (c *Client) ClearFinanceOverride(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Supabase.ClearFinanceOverride")
	defer span.End()

	updates := map[string]any{
		"is_manual_override": false,
		"updated_at":         time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.doPatch(ctx, "finance_totals?id=eq.totals", updates); err != nil {
		return &domain.ErrExternalService{Service: "supabase/finance_totals", Err: err}
	}
	return nil
}
