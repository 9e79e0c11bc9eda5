package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// --- Shared fakes ---

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeTenantStore struct {
	tenants []domain.Tenant
	err     error
	deleted []string
}

func (f *fakeTenantStore) ListTenants(_ context.Context) ([]domain.Tenant, error) {
	return f.tenants, f.err
}

func (f *fakeTenantStore) GetTenant(_ context.Context, tenantID string) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.tenants {
		if f.tenants[i].ID == tenantID {
			return &f.tenants[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "tenant", ID: tenantID}
}

func (f *fakeTenantStore) CreateTenant(_ context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tenants = append(f.tenants, *tenant)
	return tenant, nil
}

func (f *fakeTenantStore) UpdateTenant(_ context.Context, tenantID string, _ map[string]any) error {
	return f.err
}

func (f *fakeTenantStore) DeleteTenant(_ context.Context, tenantID string) error {
	f.deleted = append(f.deleted, tenantID)
	return f.err
}

type fakeBillStore struct {
	bills        []domain.BillRecord
	err          error
	inserted     []domain.BillRecord
	updates      map[string]map[string]any
	deletedFor   []string
	insertErr    error
	duplicateKey map[string]bool // (tenantID|month) pairs dropped on bulk insert
}

func (f *fakeBillStore) ListBills(_ context.Context) ([]domain.BillRecord, error) {
	return f.bills, f.err
}

func (f *fakeBillStore) ListTenantBills(_ context.Context, tenantID string) ([]domain.BillRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.BillRecord
	for _, b := range f.bills {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBillStore) GetBill(_ context.Context, billID string) (*domain.BillRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.bills {
		if f.bills[i].ID == billID {
			return &f.bills[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "bill", ID: billID}
}

func (f *fakeBillStore) CreateBill(_ context.Context, bill *domain.BillRecord) (*domain.BillRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bills = append(f.bills, *bill)
	return bill, nil
}

func (f *fakeBillStore) InsertBills(_ context.Context, bills []domain.BillRecord) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	n := 0
	for _, b := range bills {
		if f.duplicateKey[b.TenantID+"|"+b.Month] {
			continue
		}
		f.inserted = append(f.inserted, b)
		f.bills = append(f.bills, b)
		n++
	}
	return n, nil
}

func (f *fakeBillStore) UpdateBill(_ context.Context, billID string, updates map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]map[string]any{}
	}
	f.updates[billID] = updates
	return nil
}

func (f *fakeBillStore) DeleteTenantBills(_ context.Context, tenantID string) error {
	f.deletedFor = append(f.deletedFor, tenantID)
	return f.err
}

type fakeMarkerStore struct {
	markers map[string]string
	err     error
}

func (f *fakeMarkerStore) GetMarker(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.markers[key]
	if !ok {
		return "", &domain.ErrNotFound{Resource: "marker", ID: key}
	}
	return v, nil
}

func (f *fakeMarkerStore) SetMarker(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	if f.markers == nil {
		f.markers = map[string]string{}
	}
	f.markers[key] = value
	return nil
}

type fakeRequirementStore struct {
	reqs    []domain.BuildingRequirement
	err     error
	updates map[string]map[string]any
}

func (f *fakeRequirementStore) ListRequirements(_ context.Context) ([]domain.BuildingRequirement, error) {
	return f.reqs, f.err
}

func (f *fakeRequirementStore) GetRequirement(_ context.Context, reqID string) (*domain.BuildingRequirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.reqs {
		if f.reqs[i].ID == reqID {
			return &f.reqs[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "requirement", ID: reqID}
}

func (f *fakeRequirementStore) CreateRequirement(_ context.Context, req *domain.BuildingRequirement) (*domain.BuildingRequirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	req.ID = fmt.Sprintf("req-%d", len(f.reqs)+1)
	f.reqs = append(f.reqs, *req)
	return req, nil
}

func (f *fakeRequirementStore) UpdateRequirement(_ context.Context, reqID string, updates map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]map[string]any{}
	}
	f.updates[reqID] = updates
	for i := range f.reqs {
		if f.reqs[i].ID != reqID {
			continue
		}
		if v, ok := updates["issuedDate"].(string); ok {
			f.reqs[i].IssuedDate = v
		}
		if v, ok := updates["expiryDate"].(string); ok {
			f.reqs[i].ExpiryDate = v
		}
		if v, ok := updates["status"].(string); ok {
			f.reqs[i].Status = domain.RequirementStatus(v)
		}
		if v, ok := updates["documentUrl"].(string); ok {
			f.reqs[i].DocumentURL = v
		}
	}
	return nil
}

func (f *fakeRequirementStore) DeleteRequirement(_ context.Context, reqID string) error {
	return f.err
}

type fakeCashStore struct {
	txns     []domain.CashTransaction
	override *domain.FinanceOverride
	err      error
}

func (f *fakeCashStore) ListCashTransactions(_ context.Context) ([]domain.CashTransaction, error) {
	return f.txns, f.err
}

func (f *fakeCashStore) CreateCashTransaction(_ context.Context, tx *domain.CashTransaction) (*domain.CashTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	tx.ID = fmt.Sprintf("tx-%d", len(f.txns)+1)
	f.txns = append(f.txns, *tx)
	return tx, nil
}

func (f *fakeCashStore) DeleteCashTransaction(_ context.Context, txID string) error {
	return f.err
}

func (f *fakeCashStore) GetFinanceOverride(_ context.Context) (*domain.FinanceOverride, error) {
	return f.override, f.err
}

func (f *fakeCashStore) SetFinanceOverride(_ context.Context, req *domain.FinanceOverrideRequest) error {
	if f.err != nil {
		return f.err
	}
	f.override = &domain.FinanceOverride{
		ID:                 "totals",
		CashInBank:         req.CashInBank,
		TotalReceipts:      req.TotalReceipts,
		TotalDisbursements: req.TotalDisbursements,
		IsManualOverride:   true,
	}
	return nil
}

func (f *fakeCashStore) ClearFinanceOverride(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.override = nil
	return nil
}

type fakeEventStore struct {
	events  []domain.CalendarEvent
	err     error
	deleted []string
}

func (f *fakeEventStore) ListEvents(_ context.Context) ([]domain.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeEventStore) CreateEvent(_ context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	event.ID = fmt.Sprintf("event-%d", len(f.events)+1)
	f.events = append(f.events, *event)
	return event, nil
}

func (f *fakeEventStore) DeleteEvent(_ context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return f.err
}

type fakeNotifier struct {
	billNotices []string // tenant IDs
	escalations []string // tenant IDs
	err         error
}

func (f *fakeNotifier) SendBillNotice(_ context.Context, tenant *domain.Tenant, _ *domain.BillRecord) error {
	if f.err != nil {
		return f.err
	}
	f.billNotices = append(f.billNotices, tenant.ID)
	return nil
}

func (f *fakeNotifier) SendEscalationAlert(_ context.Context, tenant *domain.Tenant, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.escalations = append(f.escalations, tenant.ID)
	return nil
}

type fakeDocStore struct {
	uploads map[string][]byte
	err     error
}

func (f *fakeDocStore) UploadDocument(_ context.Context, name, _ string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[name] = data
	return "https://storage.example.com/compliance-docs/" + name, nil
}

type fakeStaffStore struct {
	staff   []domain.Staff
	err     error
	updates map[string]map[string]any
	deleted []string
}

func (f *fakeStaffStore) ListStaff(_ context.Context) ([]domain.Staff, error) {
	return f.staff, f.err
}

func (f *fakeStaffStore) CreateStaff(_ context.Context, member *domain.Staff) (*domain.Staff, error) {
	if f.err != nil {
		return nil, f.err
	}
	member.ID = fmt.Sprintf("staff-%d", len(f.staff)+1)
	f.staff = append(f.staff, *member)
	return member, nil
}

func (f *fakeStaffStore) UpdateStaff(_ context.Context, staffID string, updates map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]map[string]any{}
	}
	f.updates[staffID] = updates
	return nil
}

func (f *fakeStaffStore) DeleteStaff(_ context.Context, staffID string) error {
	f.deleted = append(f.deleted, staffID)
	return f.err
}
