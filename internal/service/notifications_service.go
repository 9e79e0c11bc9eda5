package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var notificationsTracer = otel.Tracer("service/notifications")

// escalationMinYears is how long a lease must have run before its
// anniversary triggers an escalation reminder.
const escalationMinYears = 3

// escalationLookaheadDays is how far ahead of the anniversary the
// reminder fires.
const escalationLookaheadDays = 30

// NotificationsService builds the alert feed for the dashboard bell
// and dispatches escalation reminders by email.
type NotificationsService struct {
	tenants      port.TenantStore
	bills        port.BillStore
	requirements port.RequirementStore
	notify       port.Notifier
	clock        port.Clock
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewNotificationsService creates a notifications service.
func NewNotificationsService(
	tenants port.TenantStore,
	bills port.BillStore,
	requirements port.RequirementStore,
	notify port.Notifier,
	clock port.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NotificationsService {
	return &NotificationsService{
		tenants:      tenants,
		bills:        bills,
		requirements: requirements,
		notify:       notify,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// escalationDue reports whether a tenant's rent escalation anniversary
// falls within the lookahead window. A tenant qualifies when the lease
// has run at least three full years, escalation terms are on file, and
// this year's anniversary is between today and thirty days out.
func escalationDue(t *domain.Tenant, today time.Time) (time.Time, bool) {
	details := strings.TrimSpace(strings.ToLower(t.EscalationDetails))
	if details == "" || details == "none" {
		return time.Time{}, false
	}

	leaseStart, err := time.Parse(dateLayout, t.LeaseStart)
	if err != nil {
		return time.Time{}, false
	}

	if today.Year()-leaseStart.Year() < escalationMinYears {
		return time.Time{}, false
	}

	anniversary := time.Date(today.Year(), leaseStart.Month(), leaseStart.Day(), 0, 0, 0, 0, time.UTC)
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := todayMidnight.AddDate(0, 0, escalationLookaheadDays)

	if anniversary.Before(todayMidnight) || anniversary.After(windowEnd) {
		return time.Time{}, false
	}
	return anniversary, true
}

// BuildAlerts assembles the notification feed: expiring or expired
// compliance requirements, unpaid bills for the current month, and
// upcoming escalation anniversaries.
func (s *NotificationsService) BuildAlerts(ctx context.Context) ([]domain.Alert, error) {
	ctx, span := notificationsTracer.Start(ctx, "NotificationsService.BuildAlerts")
	defer span.End()

	var tenants []domain.Tenant
	var bills []domain.BillRecord
	var reqs []domain.BuildingRequirement

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
	g.Go(func() error {
		var err error
		reqs, err = s.requirements.ListRequirements(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.clock.Now()
	alerts := []domain.Alert{}

	for i := range reqs {
		status := ClassifyRequirementStatus(&reqs[i], today)
		switch status {
		case domain.StatusExpired:
			alerts = append(alerts, domain.Alert{
				ID:          "compliance-expired-" + reqs[i].ID,
				Title:       reqs[i].Name + " has expired",
				Description: fmt.Sprintf("Expired on %s. Renew immediately.", reqs[i].ExpiryDate),
				Type:        domain.AlertCompliance,
				Link:        "/compliance",
				Date:        reqs[i].ExpiryDate,
			})
		case domain.StatusExpiringSoon:
			alerts = append(alerts, domain.Alert{
				ID:          "compliance-expiring-" + reqs[i].ID,
				Title:       reqs[i].Name + " is expiring soon",
				Description: fmt.Sprintf("Expires on %s.", reqs[i].ExpiryDate),
				Type:        domain.AlertCompliance,
				Link:        "/compliance",
				Date:        reqs[i].ExpiryDate,
			})
		}
	}

	names := make(map[string]string, len(tenants))
	for _, t := range tenants {
		names[t.ID] = t.Name
	}

	currentMonth := today.UTC().Format(monthLayout)
	for _, b := range bills {
		if b.Month != currentMonth || b.IsPaid {
			continue
		}
		name := names[b.TenantID]
		if name == "" {
			name = b.TenantID
		}
		alerts = append(alerts, domain.Alert{
			ID:          "rent-unpaid-" + b.ID,
			Title:       name + " has an unpaid bill",
			Description: fmt.Sprintf("%.2f due for %s.", b.TotalBill, b.Month),
			Type:        domain.AlertRent,
			Link:        "/billing",
			Date:        b.Month,
		})
	}

	for i := range tenants {
		anniversary, due := escalationDue(&tenants[i], today)
		if !due {
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID:          "escalation-" + tenants[i].ID,
			Title:       "Rent escalation due: " + tenants[i].Name,
			Description: fmt.Sprintf("Lease anniversary on %s. Terms: %s", anniversary.Format(dateLayout), tenants[i].EscalationDetails),
			Type:        domain.AlertEscalation,
			Link:        "/tenants/" + tenants[i].ID,
			Date:        anniversary.Format(dateLayout),
		})
	}

	return alerts, nil
}

// DispatchEscalationAlerts emails the admins one reminder per tenant
// whose escalation anniversary is inside the lookahead window. Send
// failures are logged and do not stop the sweep.
func (s *NotificationsService) DispatchEscalationAlerts(ctx context.Context) (int, error) {
	ctx, span := notificationsTracer.Start(ctx, "NotificationsService.DispatchEscalationAlerts")
	defer span.End()

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return 0, err
	}

	today := s.clock.Now()
	sent := 0
	for i := range tenants {
		anniversary, due := escalationDue(&tenants[i], today)
		if !due {
			continue
		}
		if err := s.notify.SendEscalationAlert(ctx, &tenants[i], anniversary); err != nil {
			s.logger.Warn("escalation alert not sent",
				zap.String("tenant_id", tenants[i].ID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.IncrEmailSent("escalation")
		sent++
	}

	s.logger.Info("escalation sweep complete", zap.Int("sent", sent))
	return sent, nil
}
