package domain

// ============================================================
// Staff Directory
// ============================================================

// Staff is one building staff member shown in the directory.
// Icon/color fields drive the card rendering on the frontend.
type Staff struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Info     []string `json:"info"`
	IconName string   `json:"icon_name"`
	Color    string   `json:"color"`
	Bg       string   `json:"bg"`
	ImageURL string   `json:"image_url,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}

// StaffRequest is the payload for creating or updating a staff member.
type StaffRequest struct {
	Name     string   `json:"name"`
	Role     string   `json:"role"`
	Info     []string `json:"info"`
	IconName string   `json:"icon_name"`
	Color    string   `json:"color"`
	Bg       string   `json:"bg"`
	ImageURL string   `json:"image_url,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
}
