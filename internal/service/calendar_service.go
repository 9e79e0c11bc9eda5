package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var calendarTracer = otel.Tracer("service/calendar")

// holidayTable maps recurring holidays to their display names. Dates
// use a `*` year wildcard and are expanded for last year, this year
// and next year on every read.
var holidayTable = map[string]string{
	"*-01-01": "New Year's Day",
	"*-04-09": "Araw ng Kagitingan",
	"*-05-01": "Labor Day",
	"*-06-12": "Independence Day",
	"*-08-21": "Ninoy Aquino Day",
	"*-11-01": "All Saints' Day",
	"*-11-30": "Bonifacio Day",
	"*-12-25": "Christmas Day",
	"*-12-30": "Rizal Day",
	"*-12-31": "New Year's Eve",
}

// CalendarService merges stored user events with generated holiday
// and payroll entries.
type CalendarService struct {
	store  port.EventStore
	clock  port.Clock
	logger *zap.Logger
}

// NewCalendarService creates a calendar service.
func NewCalendarService(store port.EventStore, clock port.Clock, logger *zap.Logger) *CalendarService {
	return &CalendarService{store: store, clock: clock, logger: logger}
}

// generatedEvents expands holidays and payroll days for the three-year
// window around today. Payroll lands on the 15th and the last day of
// each month, moved back to Saturday when it falls on a Sunday.
func generatedEvents(today time.Time) []domain.CalendarEvent {
	var events []domain.CalendarEvent

	for year := today.Year() - 1; year <= today.Year()+1; year++ {
		for pattern, name := range holidayTable {
			date := strings.Replace(pattern, "*", fmt.Sprintf("%d", year), 1)
			events = append(events, domain.CalendarEvent{
				ID:    "holiday-" + date,
				Title: name,
				Date:  date,
				Type:  domain.EventHoliday,
			})
		}

		for month := time.January; month <= time.December; month++ {
			mid := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
			// Day 0 of the next month is the last day of this one.
			end := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

			for _, day := range []time.Time{mid, end} {
				if day.Weekday() == time.Sunday {
					day = day.AddDate(0, 0, -1)
				}
				date := day.Format(dateLayout)
				events = append(events, domain.CalendarEvent{
					ID:    "payroll-" + date,
					Title: "Payroll",
					Date:  date,
					Type:  domain.EventPayroll,
				})
			}
		}
	}

	return events
}

// ListEvents returns stored user events merged with the generated
// holiday and payroll entries, sorted by date.
func (s *CalendarService) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	ctx, span := calendarTracer.Start(ctx, "CalendarService.ListEvents")
	defer span.End()

	stored, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	events := append(stored, generatedEvents(s.clock.Now())...)
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// CreateEvent stores a user event. Generated entries cannot be created
// by hand; only meeting and generic types persist.
func (s *CalendarService) CreateEvent(ctx context.Context, req *domain.EventRequest) (*domain.CalendarEvent, error) {
	ctx, span := calendarTracer.Start(ctx, "CalendarService.CreateEvent")
	defer span.End()

	if req.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "title is required"}
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	if req.Type != domain.EventMeeting && req.Type != domain.EventGeneric {
		return nil, &domain.ErrValidation{Field: "type", Message: "type must be meeting or event"}
	}

	event := &domain.CalendarEvent{
		Title:       req.Title,
		Date:        req.Date,
		Type:        req.Type,
		Description: req.Description,
	}
	return s.store.CreateEvent(ctx, event)
}

// DeleteEvent removes a user event. Generated entries carry synthetic
// IDs and are rejected.
func (s *CalendarService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, span := calendarTracer.Start(ctx, "CalendarService.DeleteEvent")
	defer span.End()

	if strings.HasPrefix(eventID, "holiday-") || strings.HasPrefix(eventID, "payroll-") {
		return &domain.ErrValidation{Field: "id", Message: "generated events cannot be deleted"}
	}
	return s.store.DeleteEvent(ctx, eventID)
}
