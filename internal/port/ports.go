// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// Clock supplies the current time. Injected so the temporal logic
// (backlog generation, expiry classification) is testable.
type Clock interface {
	Now() time.Time
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// TenantStore handles tenant records.
type TenantStore interface {
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
	GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error)
	CreateTenant(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, updates map[string]any) error
	DeleteTenant(ctx context.Context, tenantID string) error
}

// BillStore handles monthly bill records.
type BillStore interface {
	ListBills(ctx context.Context) ([]domain.BillRecord, error)
	ListTenantBills(ctx context.Context, tenantID string) ([]domain.BillRecord, error)
	GetBill(ctx context.Context, billID string) (*domain.BillRecord, error)
	CreateBill(ctx context.Context, bill *domain.BillRecord) (*domain.BillRecord, error)
	// InsertBills bulk-inserts generated bills. Rows colliding with an
	// existing (tenant_id, month) pair are silently dropped by the store,
	// so a concurrent generator run cannot produce duplicates.
	InsertBills(ctx context.Context, bills []domain.BillRecord) (int, error)
	UpdateBill(ctx context.Context, billID string, updates map[string]any) error
	DeleteTenantBills(ctx context.Context, tenantID string) error
}

// RequirementStore handles compliance requirement records.
type RequirementStore interface {
	ListRequirements(ctx context.Context) ([]domain.BuildingRequirement, error)
	GetRequirement(ctx context.Context, reqID string) (*domain.BuildingRequirement, error)
	CreateRequirement(ctx context.Context, req *domain.BuildingRequirement) (*domain.BuildingRequirement, error)
	UpdateRequirement(ctx context.Context, reqID string, updates map[string]any) error
	DeleteRequirement(ctx context.Context, reqID string) error
}

// CashStore handles the cash ledger and the totals override row.
type CashStore interface {
	ListCashTransactions(ctx context.Context) ([]domain.CashTransaction, error)
	CreateCashTransaction(ctx context.Context, tx *domain.CashTransaction) (*domain.CashTransaction, error)
	DeleteCashTransaction(ctx context.Context, txID string) error

	// GetFinanceOverride returns the latest override row, or nil when none exists.
	GetFinanceOverride(ctx context.Context) (*domain.FinanceOverride, error)
	SetFinanceOverride(ctx context.Context, req *domain.FinanceOverrideRequest) error
	ClearFinanceOverride(ctx context.Context) error
}

// EventStore handles user calendar events. Generated holidays and
// payroll entries never reach the store.
type EventStore interface {
	ListEvents(ctx context.Context) ([]domain.CalendarEvent, error)
	CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// StaffStore handles staff directory records.
type StaffStore interface {
	ListStaff(ctx context.Context) ([]domain.Staff, error)
	CreateStaff(ctx context.Context, member *domain.Staff) (*domain.Staff, error)
	UpdateStaff(ctx context.Context, staffID string, updates map[string]any) error
	DeleteStaff(ctx context.Context, staffID string) error
}

// MarkerStore persists small key/value markers, such as the month the
// bill backlog generator last ran for.
type MarkerStore interface {
	GetMarker(ctx context.Context, key string) (string, error)
	SetMarker(ctx context.Context, key, value string) error
}

// DocumentStore uploads compliance documents and returns a public URL.
type DocumentStore interface {
	UploadDocument(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Notifier sends outbound email to tenants and admins. Implementations
// must be safe to call with a nil-equivalent (disabled) configuration.
type Notifier interface {
	SendBillNotice(ctx context.Context, tenant *domain.Tenant, bill *domain.BillRecord) error
	SendEscalationAlert(ctx context.Context, tenant *domain.Tenant, anniversary time.Time) error
}
