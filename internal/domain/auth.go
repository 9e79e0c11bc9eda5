package domain

// ============================================================
// Authentication & Sessions
// ============================================================

// UserRole determines what an authenticated session may do.
// Viewers get read-only access; admins can mutate.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// User is an authenticated dashboard principal. The system has a
// fixed set of users (admin, viewer) configured via environment.
type User struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	Name     string   `json:"name"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token. ExpiresIn doubles as the
// idle timeout: the frontend refreshes the token on activity and the
// session lapses when it stops.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// ============================================================
// Notifications (bell widget)
// ============================================================

const (
	AlertCompliance = "compliance"
	AlertRent       = "rent"
	AlertEscalation = "escalation"
)

// Alert is one entry in the notification feed.
type Alert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Link        string `json:"link"`
	Date        string `json:"date,omitempty"`
}
