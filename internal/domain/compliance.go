package domain

// ============================================================
// Building Compliance Requirements
// ============================================================

// RequirementStatus is the display state of a compliance certificate.
type RequirementStatus string

const (
	StatusActive       RequirementStatus = "Active"
	StatusExpiringSoon RequirementStatus = "Expiring Soon"
	StatusExpired      RequirementStatus = "Expired"
	StatusInactive     RequirementStatus = "Inactive"
)

// ExpiryWarningDays is how far ahead of expiry a requirement is
// flagged as expiring soon.
const ExpiryWarningDays = 30

// BuildingRequirement is a renewable certificate or license the
// building must keep current (fire safety, pollution control, ...).
// Status is derived from ExpiryDate on every read; only the Inactive
// pin is authoritative as stored.
type BuildingRequirement struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	IssuedDate     string            `json:"issued_date"` // YYYY-MM-DD
	ValidityYears  int               `json:"validity_years"`
	ExpiryDate     string            `json:"expiry_date"`
	Status         RequirementStatus `json:"status"`
	ActivationDate string            `json:"activation_date,omitempty"`
	DocumentURL    string            `json:"document_url,omitempty"`
}

// RequirementRequest is the payload for creating or updating a requirement.
type RequirementRequest struct {
	Name          string `json:"name"`
	IssuedDate    string `json:"issued_date"`
	ValidityYears int    `json:"validity_years"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
}
