package domain

// ============================================================
// Monthly Bills
// ============================================================

// BillRecord is one tenant's bill for one calendar month.
// (tenant_id, month) is unique; the backlog generator relies on it.
type BillRecord struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	Month     string  `json:"month"` // YYYY-MM
	TotalBill float64 `json:"total_bill"`
	IsPaid    bool    `json:"is_paid"`
	PaidDate  string  `json:"paid_date,omitempty"`
	CreatedAt string  `json:"created_at"`

	// Optional utility breakdown entered on the billing form.
	Rent          float64 `json:"rent,omitempty"`
	ElectricBill  float64 `json:"electric_bill,omitempty"`
	WaterBill     float64 `json:"water_bill,omitempty"`
	ElectricUsage float64 `json:"electric_usage,omitempty"` // kWh
	WaterUsage    float64 `json:"water_usage,omitempty"`    // cu.m
}

// BillRequest is the payload for manually creating a bill.
type BillRequest struct {
	TenantID  string  `json:"tenant_id"`
	Month     string  `json:"month"`
	TotalBill float64 `json:"total_bill"`

	Rent          float64 `json:"rent,omitempty"`
	ElectricBill  float64 `json:"electric_bill,omitempty"`
	WaterBill     float64 `json:"water_bill,omitempty"`
	ElectricUsage float64 `json:"electric_usage,omitempty"`
	WaterUsage    float64 `json:"water_usage,omitempty"`
}

// BacklogRunResult summarizes one backlog-generation run.
type BacklogRunResult struct {
	Month        string `json:"month"`
	AlreadyRan   bool   `json:"already_ran"`
	BillsCreated int    `json:"bills_created"`
	BillsUpdated int    `json:"bills_updated"`
	TenantsTotal int    `json:"tenants_total"`
	Skipped      int    `json:"skipped"`
}

// MonthlyCollection aggregates billed amounts for one month,
// split into paid and unpaid portions. Used by the dashboard chart.
type MonthlyCollection struct {
	Month  string  `json:"month"`
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Unpaid float64 `json:"unpaid"`
}

// BillingMetrics is an operational snapshot of the backlog generator,
// derived from the Prometheus counters.
type BillingMetrics struct {
	TotalRuns       int64   `json:"total_runs"`
	RunsGenerated   int64   `json:"runs_generated"`
	RunsSkipped     int64   `json:"runs_skipped"`
	RunsFailed      int64   `json:"runs_failed"`
	BillsCreated    int64   `json:"bills_created"`
	BillsBackfilled int64   `json:"bills_backfilled"`
	ErrorRate       float64 `json:"error_rate"`
	CacheHitRate    float64 `json:"cache_hit_rate"`
	Period          string  `json:"period"`
}

// DashboardSummary is the landing-page snapshot.
type DashboardSummary struct {
	TenantCount      int                 `json:"tenant_count"`
	UnpaidThisMonth  int                 `json:"unpaid_this_month"`
	CollectedAmount  float64             `json:"collected_amount"`
	OutstandingAmount float64            `json:"outstanding_amount"`
	Collections      []MonthlyCollection `json:"collections"`
}
