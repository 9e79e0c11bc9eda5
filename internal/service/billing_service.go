// Package service provides the business logic layer (use cases).
// BillingService owns the monthly bill lifecycle, including the
// backlog generator that backfills missing bills since lease start.
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var billingTracer = otel.Tracer("service/billing")

// MarkerLastGeneration is the app_markers key recording the last month
// (YYYY-MM) the backlog generator completed for.
const MarkerLastGeneration = "last_bill_generation"

const dateLayout = "2006-01-02"
const monthLayout = "2006-01"

// BillingService orchestrates bill reads, writes and the backlog generator.
type BillingService struct {
	bills   port.BillStore
	tenants port.TenantStore
	markers port.MarkerStore
	clock   port.Clock
	notify  port.Notifier
	epoch   time.Time
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewBillingService creates a billing service. epoch is the first day
// bills may ever be generated for; months before it are ignored even
// for leases that started earlier.
func NewBillingService(
	bills port.BillStore,
	tenants port.TenantStore,
	markers port.MarkerStore,
	clock port.Clock,
	notify port.Notifier,
	epoch time.Time,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		bills:   bills,
		tenants: tenants,
		markers: markers,
		clock:   clock,
		notify:  notify,
		epoch:   epoch,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Reads
// ============================================================

func (s *BillingService) ListBills(ctx context.Context) ([]domain.BillRecord, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListBills")
	defer span.End()

	return s.bills.ListBills(ctx)
}

func (s *BillingService) ListTenantBills(ctx context.Context, tenantID string) ([]domain.BillRecord, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListTenantBills")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))

	return s.bills.ListTenantBills(ctx, tenantID)
}

// ============================================================
// Writes
// ============================================================

// CreateBill records a manually entered bill. The month must be free
// for the tenant; the generator owns routine months.
func (s *BillingService) CreateBill(ctx context.Context, req *domain.BillRequest) (*domain.BillRecord, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreateBill")
	defer span.End()

	if req.TenantID == "" {
		return nil, &domain.ErrValidation{Field: "tenant_id", Message: "tenant_id is required"}
	}
	if _, err := time.Parse(monthLayout, req.Month); err != nil {
		return nil, &domain.ErrValidation{Field: "month", Message: "month must be YYYY-MM"}
	}
	if req.TotalBill <= 0 {
		return nil, &domain.ErrValidation{Field: "total_bill", Message: "total_bill must be positive"}
	}

	tenant, err := s.tenants.GetTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	existing, err := s.bills.ListTenantBills(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.Month == req.Month {
			return nil, &domain.ErrConflict{
				Message: fmt.Sprintf("bill for tenant %s already exists for %s", req.TenantID, req.Month),
			}
		}
	}

	bill := &domain.BillRecord{
		ID:            uuid.NewString(),
		TenantID:      req.TenantID,
		Month:         req.Month,
		TotalBill:     req.TotalBill,
		Rent:          req.Rent,
		ElectricBill:  req.ElectricBill,
		WaterBill:     req.WaterBill,
		ElectricUsage: req.ElectricUsage,
		WaterUsage:    req.WaterUsage,
		CreatedAt:     s.clock.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.bills.CreateBill(ctx, bill)
	if err != nil {
		return nil, err
	}

	// Notice is best-effort; a bounced email never fails the write.
	if err := s.notify.SendBillNotice(ctx, tenant, created); err != nil {
		s.logger.Warn("bill notice not sent",
			zap.String("tenant_id", tenant.ID),
			zap.String("month", created.Month),
			zap.Error(err),
		)
	} else {
		s.metrics.IncrEmailSent("bill_notice")
	}

	return created, nil
}

// ToggleBillPaid flips a bill's paid flag. Marking paid stamps today's
// date; marking unpaid clears it.
func (s *BillingService) ToggleBillPaid(ctx context.Context, billID string) (*domain.BillRecord, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ToggleBillPaid")
	defer span.End()
	span.SetAttributes(attribute.String("bill.id", billID))

	bill, err := s.bills.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"is_paid": !bill.IsPaid}
	if !bill.IsPaid {
		bill.PaidDate = s.clock.Now().Format(dateLayout)
		updates["paid_date"] = bill.PaidDate
	} else {
		bill.PaidDate = ""
		updates["paid_date"] = nil
	}
	bill.IsPaid = !bill.IsPaid

	if err := s.bills.UpdateBill(ctx, billID, updates); err != nil {
		return nil, err
	}
	return bill, nil
}

// ============================================================
// Backlog generator
// ============================================================

// backlogPlan is the pure output of buildBacklog: what to insert and
// which existing bills to backfill as paid.
type backlogPlan struct {
	toInsert   []domain.BillRecord
	toBackfill []domain.BillRecord
	skipped    int
}

// monthStart normalizes t to the first day of its month in UTC.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// buildBacklog walks every tenant's lease month by month, from the
// later of lease start and the billing epoch up to the current month,
// and plans a bill for each month that has none. Months in previous
// calendar years are planned as already paid, settled on December 31
// of their year; existing unpaid bills from previous years are planned
// for the same backfill.
func buildBacklog(tenants []domain.Tenant, bills []domain.BillRecord, today, epoch time.Time, logger *zap.Logger) backlogPlan {
	existing := make(map[string]bool, len(bills))
	for _, b := range bills {
		existing[b.TenantID+"|"+b.Month] = true
	}

	currentMonth := monthStart(today)
	epochMonth := monthStart(epoch)
	nowStamp := today.UTC().Format(time.RFC3339)

	var plan backlogPlan

	for i := range tenants {
		t := &tenants[i]

		start := epochMonth
		if t.LeaseStart != "" {
			leaseStart, err := time.Parse(dateLayout, t.LeaseStart)
			if err != nil {
				logger.Warn("backlog: tenant skipped, bad lease start",
					zap.String("tenant_id", t.ID),
					zap.String("lease_start", t.LeaseStart),
				)
				plan.skipped++
				continue
			}
			if m := monthStart(leaseStart); m.After(start) {
				start = m
			}
		}

		var leaseEnd time.Time
		if t.LeaseEnd != "" {
			end, err := time.Parse(dateLayout, t.LeaseEnd)
			if err != nil {
				logger.Warn("backlog: tenant skipped, bad lease end",
					zap.String("tenant_id", t.ID),
					zap.String("lease_end", t.LeaseEnd),
				)
				plan.skipped++
				continue
			}
			leaseEnd = end
		}

		for cursor := start; !cursor.After(currentMonth); cursor = cursor.AddDate(0, 1, 0) {
			if !leaseEnd.IsZero() && cursor.After(leaseEnd) {
				break
			}

			month := cursor.Format(monthLayout)
			if existing[t.ID+"|"+month] {
				continue
			}

			bill := domain.BillRecord{
				ID:        uuid.NewString(),
				TenantID:  t.ID,
				Month:     month,
				TotalBill: t.MonthlyDue(),
				CreatedAt: nowStamp,
			}
			if cursor.Year() < today.Year() {
				bill.IsPaid = true
				bill.PaidDate = fmt.Sprintf("%d-12-31", cursor.Year())
			}
			plan.toInsert = append(plan.toInsert, bill)
		}
	}

	// Bills from previous years that are still open get settled; the
	// ledger treats prior years as closed books.
	for _, b := range bills {
		if b.IsPaid {
			continue
		}
		billMonth, err := time.Parse(monthLayout, b.Month)
		if err != nil {
			continue
		}
		if billMonth.Year() < today.Year() {
			b.IsPaid = true
			b.PaidDate = fmt.Sprintf("%d-12-31", billMonth.Year())
			plan.toBackfill = append(plan.toBackfill, b)
		}
	}

	return plan
}

// RunBacklogGeneration runs the generator once. It is idempotent per
// calendar month: when the last-run marker already names the current
// month the run is a no-op. The duplicate guard of last resort is the
// store's unique (tenant_id, month) constraint, so two concurrent
// first-of-month runs cannot double-bill.
func (s *BillingService) RunBacklogGeneration(ctx context.Context, force bool) (*domain.BacklogRunResult, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.RunBacklogGeneration")
	defer span.End()

	start := s.clock.Now()
	today := start.UTC()
	currentMonth := today.Format(monthLayout)
	result := &domain.BacklogRunResult{Month: currentMonth}

	marker, err := s.markers.GetMarker(ctx, MarkerLastGeneration)
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			s.metrics.IncrBacklogRun("error")
			return nil, err
		}
	}
	if marker == currentMonth && !force {
		s.logger.Info("backlog: already generated this month",
			zap.String("month", currentMonth),
		)
		s.metrics.IncrBacklogRun("skipped")
		result.AlreadyRan = true
		return result, nil
	}

	var tenants []domain.Tenant
	var bills []domain.BillRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenants, err = s.tenants.ListTenants(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = s.bills.ListBills(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrBacklogRun("error")
		return nil, err
	}

	plan := buildBacklog(tenants, bills, today, s.epoch, s.logger)
	result.TenantsTotal = len(tenants)
	result.Skipped = plan.skipped

	if len(plan.toInsert) > 0 {
		inserted, err := s.bills.InsertBills(ctx, plan.toInsert)
		if err != nil {
			s.metrics.IncrBacklogRun("error")
			return nil, err
		}
		result.BillsCreated = inserted
		s.metrics.AddBillsGenerated("created", inserted)
	}

	for _, b := range plan.toBackfill {
		updates := map[string]any{"is_paid": true, "paid_date": b.PaidDate}
		if err := s.bills.UpdateBill(ctx, b.ID, updates); err != nil {
			s.metrics.IncrBacklogRun("error")
			return nil, err
		}
		result.BillsUpdated++
	}
	if result.BillsUpdated > 0 {
		s.metrics.AddBillsGenerated("backfilled", result.BillsUpdated)
	}

	if err := s.markers.SetMarker(ctx, MarkerLastGeneration, currentMonth); err != nil {
		s.metrics.IncrBacklogRun("error")
		return nil, err
	}

	s.metrics.IncrBacklogRun("generated")
	s.metrics.RecordRequestDuration("backlog_generation", s.clock.Now().Sub(start))

	s.logger.Info("backlog: generation complete",
		zap.String("month", currentMonth),
		zap.Int("tenants", result.TenantsTotal),
		zap.Int("created", result.BillsCreated),
		zap.Int("backfilled", result.BillsUpdated),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// ============================================================
// Dashboard & export
// ============================================================

// DashboardSummary aggregates the landing-page numbers from bills and
// tenants in one pass.
func (s *BillingService) DashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.DashboardSummary")
	defer span.End()

	var tenants []domain.Tenant
	var bills []domain.BillRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenants, err = s.tenants.ListTenants(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = s.bills.ListBills(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentMonth := s.clock.Now().UTC().Format(monthLayout)
	byMonth := make(map[string]*domain.MonthlyCollection)
	summary := &domain.DashboardSummary{TenantCount: len(tenants)}

	for _, b := range bills {
		mc, ok := byMonth[b.Month]
		if !ok {
			mc = &domain.MonthlyCollection{Month: b.Month}
			byMonth[b.Month] = mc
		}
		mc.Total += b.TotalBill
		if b.IsPaid {
			mc.Paid += b.TotalBill
		} else {
			mc.Unpaid += b.TotalBill
		}

		if b.Month == currentMonth {
			if b.IsPaid {
				summary.CollectedAmount += b.TotalBill
			} else {
				summary.UnpaidThisMonth++
				summary.OutstandingAmount += b.TotalBill
			}
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		summary.Collections = append(summary.Collections, *byMonth[m])
	}

	return summary, nil
}

// ExportCSV renders every bill as CSV for download, newest month first.
func (s *BillingService) ExportCSV(ctx context.Context) ([]byte, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ExportCSV")
	defer span.End()

	bills, err := s.bills.ListBills(ctx)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(tenants))
	for _, t := range tenants {
		names[t.ID] = t.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"month", "tenant", "total_bill", "is_paid", "paid_date"})
	for _, b := range bills {
		name := names[b.TenantID]
		if name == "" {
			name = b.TenantID
		}
		_ = w.Write([]string{
			b.Month,
			name,
			strconv.FormatFloat(b.TotalBill, 'f', 2, 64),
			strconv.FormatBool(b.IsPaid),
			b.PaidDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
