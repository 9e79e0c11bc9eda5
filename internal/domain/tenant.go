package domain

import "time"

// ============================================================
// Tenants
// ============================================================

// Tenant is a leaseholder of one or more units in the building.
// Lease dates are calendar dates in YYYY-MM-DD form; both may be empty
// for legacy records imported without a contract on file.
type Tenant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Floor int    `json:"floor"`

	ContactPerson string `json:"contact_person,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty"`

	LeaseStart        string `json:"lease_start,omitempty"`
	LeaseEnd          string `json:"lease_end,omitempty"`
	PaymentTerms      string `json:"payment_terms,omitempty"`
	EscalationDetails string `json:"escalation_details,omitempty"`

	RentGross  float64 `json:"rent_gross"`
	RentNet    float64 `json:"rent_net,omitempty"`
	VAT        float64 `json:"vat,omitempty"`
	EWT        float64 `json:"ewt,omitempty"`
	SignageFee float64 `json:"signage_fee,omitempty"`
	TotalDue   float64 `json:"total_due,omitempty"`

	EscalationRate float64 `json:"escalation_rate,omitempty"`
	VATPercent     float64 `json:"vat_percent,omitempty"`
	EWTPercent     float64 `json:"ewt_percent,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// MonthlyDue returns the amount billed for one month: the computed
// total due when present, otherwise the gross rent.
func (t *Tenant) MonthlyDue() float64 {
	if t.TotalDue > 0 {
		return t.TotalDue
	}
	return t.RentGross
}

// TenantRequest is the payload for creating or updating a tenant.
type TenantRequest struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Floor int    `json:"floor"`

	ContactPerson string `json:"contact_person,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	Email         string `json:"email,omitempty"`

	LeaseStart        string `json:"lease_start,omitempty"`
	LeaseEnd          string `json:"lease_end,omitempty"`
	PaymentTerms      string `json:"payment_terms,omitempty"`
	EscalationDetails string `json:"escalation_details,omitempty"`

	RentGross  float64 `json:"rent_gross"`
	RentNet    float64 `json:"rent_net,omitempty"`
	VAT        float64 `json:"vat,omitempty"`
	EWT        float64 `json:"ewt,omitempty"`
	SignageFee float64 `json:"signage_fee,omitempty"`
	TotalDue   float64 `json:"total_due,omitempty"`

	EscalationRate float64 `json:"escalation_rate,omitempty"`
	VATPercent     float64 `json:"vat_percent,omitempty"`
	EWTPercent     float64 `json:"ewt_percent,omitempty"`
}
