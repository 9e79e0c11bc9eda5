package domain

// ============================================================
// Calendar
// ============================================================

const (
	EventMeeting = "meeting"
	EventHoliday = "holiday"
	EventGeneric = "event"
	EventPayroll = "payroll"
)

// CalendarEvent is one dated entry on the admin calendar. Holiday and
// payroll entries are generated, never stored; only user events persist.
type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// EventRequest is the payload for adding a user event.
type EventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}
