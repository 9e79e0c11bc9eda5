package domain

import "time"

// ============================================================
// Cash Ledger
// ============================================================

const (
	TransactionReceipt      = "receipt"
	TransactionDisbursement = "disbursement"
)

// CashTransaction is one dated monetary entry in the cash ledger.
// It is not linked to any tenant or bill; totals are a pure fold.
type CashTransaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"` // receipt | disbursement
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ReferenceNo string  `json:"reference_no,omitempty"`
}

// CashTransactionRequest is the payload for recording a transaction.
type CashTransactionRequest struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ReferenceNo string  `json:"reference_no,omitempty"`
}

// FinanceTotals is the derived cash position shown on the finance page.
// Never persisted; recomputed from the ledger unless an override row
// is in effect.
type FinanceTotals struct {
	CashInBank         float64 `json:"cash_in_bank"`
	TotalReceipts      float64 `json:"total_receipts"`
	TotalDisbursements float64 `json:"total_disbursements"`
	IsManualOverride   bool    `json:"is_manual_override"`
}

// FinanceOverride is an admin-entered snapshot of the totals that
// supersedes the computed sums while is_manual_override is set.
// Only the latest row by UpdatedAt is meaningful.
type FinanceOverride struct {
	ID                 string    `json:"id"`
	CashInBank         float64   `json:"cash_in_bank"`
	TotalReceipts      float64   `json:"total_receipts"`
	TotalDisbursements float64   `json:"total_disbursements"`
	IsManualOverride   bool      `json:"is_manual_override"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FinanceOverrideRequest is the payload for pinning the totals.
type FinanceOverrideRequest struct {
	CashInBank         float64 `json:"cash_in_bank"`
	TotalReceipts      float64 `json:"total_receipts"`
	TotalDisbursements float64 `json:"total_disbursements"`
}
