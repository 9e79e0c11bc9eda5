package service

import (
	"context"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var financeTracer = otel.Tracer("service/finance")

const financeTotalsCacheKey = "totals"

// FinanceService owns the cash ledger and the derived totals shown on
// the finance page.
type FinanceService struct {
	store   port.CashStore
	cache   port.Cache[domain.FinanceTotals]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewFinanceService creates a finance service.
func NewFinanceService(store port.CashStore, cache port.Cache[domain.FinanceTotals], metrics *observability.Metrics, logger *zap.Logger) *FinanceService {
	return &FinanceService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// aggregateTotals folds the ledger into totals. Sums run on decimals
// so a long ledger of cent-level entries never drifts; only the final
// figures convert back to float.
func aggregateTotals(txns []domain.CashTransaction) domain.FinanceTotals {
	receipts := decimal.Zero
	disbursements := decimal.Zero

	for _, tx := range txns {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case domain.TransactionReceipt:
			receipts = receipts.Add(amount)
		case domain.TransactionDisbursement:
			disbursements = disbursements.Add(amount)
		}
	}

	cashInBank, _ := receipts.Sub(disbursements).Float64()
	totalReceipts, _ := receipts.Float64()
	totalDisbursements, _ := disbursements.Float64()

	return domain.FinanceTotals{
		CashInBank:         cashInBank,
		TotalReceipts:      totalReceipts,
		TotalDisbursements: totalDisbursements,
	}
}

// GetTotals returns the finance totals. An active manual override row
// wins verbatim over the computed sums.
func (s *FinanceService) GetTotals(ctx context.Context) (*domain.FinanceTotals, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetTotals")
	defer span.End()

	if totals, ok := s.cache.Get(financeTotalsCacheKey); ok {
		s.metrics.IncrCacheHit("finance")
		return &totals, nil
	}
	s.metrics.IncrCacheMiss("finance")

	start := time.Now()

	override, err := s.store.GetFinanceOverride(ctx)
	if err != nil {
		return nil, err
	}
	if override != nil && override.IsManualOverride {
		totals := domain.FinanceTotals{
			CashInBank:         override.CashInBank,
			TotalReceipts:      override.TotalReceipts,
			TotalDisbursements: override.TotalDisbursements,
			IsManualOverride:   true,
		}
		s.cache.Set(financeTotalsCacheKey, totals)
		return &totals, nil
	}

	txns, err := s.store.ListCashTransactions(ctx)
	if err != nil {
		return nil, err
	}

	totals := aggregateTotals(txns)
	s.cache.Set(financeTotalsCacheKey, totals)
	s.metrics.RecordRequestDuration("finance_totals", time.Since(start))

	return &totals, nil
}

func (s *FinanceService) ListTransactions(ctx context.Context) ([]domain.CashTransaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListTransactions")
	defer span.End()

	return s.store.ListCashTransactions(ctx)
}

// CreateTransaction records one ledger entry and invalidates the
// cached totals.
func (s *FinanceService) CreateTransaction(ctx context.Context, req *domain.CashTransactionRequest) (*domain.CashTransaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CreateTransaction")
	defer span.End()

	if req.Type != domain.TransactionReceipt && req.Type != domain.TransactionDisbursement {
		return nil, &domain.ErrValidation{Field: "type", Message: "type must be receipt or disbursement"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: "date must be YYYY-MM-DD"}
	}

	tx := &domain.CashTransaction{
		Date:        req.Date,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ReferenceNo: req.ReferenceNo,
	}

	created, err := s.store.CreateCashTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(financeTotalsCacheKey)
	return created, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, txID string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteTransaction")
	defer span.End()

	if err := s.store.DeleteCashTransaction(ctx, txID); err != nil {
		return err
	}
	s.cache.Delete(financeTotalsCacheKey)
	return nil
}

// SetOverride pins the totals to admin-entered figures until cleared.
func (s *FinanceService) SetOverride(ctx context.Context, req *domain.FinanceOverrideRequest) (*domain.FinanceTotals, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.SetOverride")
	defer span.End()

	if err := s.store.SetFinanceOverride(ctx, req); err != nil {
		return nil, err
	}
	s.cache.Delete(financeTotalsCacheKey)

	s.logger.Info("finance totals override set",
		zap.Float64("cash_in_bank", req.CashInBank),
	)

	return s.GetTotals(ctx)
}

// ClearOverride drops the pin; totals are computed from the ledger again.
func (s *FinanceService) ClearOverride(ctx context.Context) (*domain.FinanceTotals, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ClearOverride")
	defer span.End()

	if err := s.store.ClearFinanceOverride(ctx); err != nil {
		return nil, err
	}
	s.cache.Delete(financeTotalsCacheKey)

	return s.GetTotals(ctx)
}
