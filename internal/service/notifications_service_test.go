package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/observability"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

func newNotificationsService(
	tenants *fakeTenantStore,
	bills *fakeBillStore,
	reqs *fakeRequirementStore,
	notify *fakeNotifier,
	clock *fakeClock,
) *service.NotificationsService {
	return service.NewNotificationsService(
		tenants, bills, reqs, notify, clock,
		observability.NewMetrics(), zap.NewNop(),
	)
}

func alertIDs(alerts []domain.Alert) map[string]bool {
	ids := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		ids[a.ID] = true
	}
	return ids
}

func TestBuildAlerts_AssemblesAllTypes(t *testing.T) {
	clock := &fakeClock{now: mustDate("2027-06-15")}
	tenants := &fakeTenantStore{tenants: []domain.Tenant{
		{ID: "t-1", Name: "Alpha Traders", LeaseStart: "2024-07-01", EscalationDetails: "5% yearly"},
		{ID: "t-2", Name: "Beta Foods", LeaseStart: "2024-07-01"},
	}}
	bills := &fakeBillStore{bills: []domain.BillRecord{
		{ID: "b-1", TenantID: "t-1", Month: "2027-06", TotalBill: 12000, IsPaid: false},
		{ID: "b-2", TenantID: "t-2", Month: "2027-06", TotalBill: 8000, IsPaid: true},
		{ID: "b-3", TenantID: "t-1", Month: "2027-05", TotalBill: 12000, IsPaid: false},
	}}
	reqs := &fakeRequirementStore{reqs: []domain.BuildingRequirement{
		{ID: "r-1", Name: "Fire Permit", ExpiryDate: "2027-05-01", Status: domain.StatusActive},
		{ID: "r-2", Name: "Sanitary Permit", ExpiryDate: "2027-07-01", Status: domain.StatusActive},
		{ID: "r-3", Name: "Business Permit", ExpiryDate: "2028-01-01", Status: domain.StatusActive},
	}}

	svc := newNotificationsService(tenants, bills, reqs, &fakeNotifier{}, clock)
	alerts, err := svc.BuildAlerts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ids := alertIDs(alerts)
	for _, want := range []string{
		"compliance-expired-r-1",
		"compliance-expiring-r-2",
		"rent-unpaid-b-1",
		"escalation-t-1",
	} {
		if !ids[want] {
			t.Errorf("expected alert %s, got %v", want, ids)
		}
	}
	if len(alerts) != 4 {
		t.Errorf("expected 4 alerts, got %d", len(alerts))
	}
}

func TestBuildAlerts_StoreErrorPropagates(t *testing.T) {
	clock := &fakeClock{now: mustDate("2027-06-15")}
	bills := &fakeBillStore{err: errors.New("upstream down")}
	svc := newNotificationsService(&fakeTenantStore{}, bills, &fakeRequirementStore{}, &fakeNotifier{}, clock)

	if _, err := svc.BuildAlerts(context.Background()); err == nil {
		t.Fatal("expected error from failing store")
	}
}

func TestDispatchEscalationAlerts_WindowAndTerms(t *testing.T) {
	clock := &fakeClock{now: mustDate("2027-06-15")}
	tenants := &fakeTenantStore{tenants: []domain.Tenant{
		// anniversary 2027-07-01, inside the 30-day window
		{ID: "due", LeaseStart: "2024-07-01", EscalationDetails: "5% yearly"},
		// lease only two years old
		{ID: "young", LeaseStart: "2025-07-01", EscalationDetails: "5% yearly"},
		// anniversary already passed this year
		{ID: "passed", LeaseStart: "2024-06-01", EscalationDetails: "5% yearly"},
		// anniversary beyond the window
		{ID: "far", LeaseStart: "2024-08-20", EscalationDetails: "5% yearly"},
		// no escalation terms on file
		{ID: "none", LeaseStart: "2024-07-01", EscalationDetails: "None"},
		{ID: "blank", LeaseStart: "2024-07-01", EscalationDetails: "  "},
		// unparseable lease date
		{ID: "bad", LeaseStart: "July 2024", EscalationDetails: "5% yearly"},
	}}
	notify := &fakeNotifier{}

	svc := newNotificationsService(tenants, &fakeBillStore{}, &fakeRequirementStore{}, notify, clock)
	sent, err := svc.DispatchEscalationAlerts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 alert sent, got %d", sent)
	}
	if len(notify.escalations) != 1 || notify.escalations[0] != "due" {
		t.Errorf("expected escalation for tenant due, got %v", notify.escalations)
	}
}

func TestDispatchEscalationAlerts_SameDayAnniversaryCounts(t *testing.T) {
	clock := &fakeClock{now: mustDate("2027-07-01")}
	tenants := &fakeTenantStore{tenants: []domain.Tenant{
		{ID: "t-1", LeaseStart: "2024-07-01", EscalationDetails: "10% on renewal"},
	}}
	notify := &fakeNotifier{}

	svc := newNotificationsService(tenants, &fakeBillStore{}, &fakeRequirementStore{}, notify, clock)
	sent, err := svc.DispatchEscalationAlerts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 1 {
		t.Errorf("expected 1 alert sent, got %d", sent)
	}
}

func TestDispatchEscalationAlerts_SendFailureDoesNotAbort(t *testing.T) {
	clock := &fakeClock{now: mustDate("2027-06-15")}
	tenants := &fakeTenantStore{tenants: []domain.Tenant{
		{ID: "t-1", LeaseStart: "2024-07-01", EscalationDetails: "5% yearly"},
		{ID: "t-2", LeaseStart: "2024-07-01", EscalationDetails: "5% yearly"},
	}}
	notify := &fakeNotifier{err: errors.New("smtp refused")}

	svc := newNotificationsService(tenants, &fakeBillStore{}, &fakeRequirementStore{}, notify, clock)
	sent, err := svc.DispatchEscalationAlerts(context.Background())
	if err != nil {
		t.Fatalf("expected sweep to finish despite send failures, got %v", err)
	}
	if sent != 0 {
		t.Errorf("expected 0 sent, got %d", sent)
	}
}
