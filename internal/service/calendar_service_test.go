package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/service"

	"go.uber.org/zap"
)

func listCalendar(t *testing.T, store *fakeEventStore, today string) []domain.CalendarEvent {
	t.Helper()
	svc := service.NewCalendarService(store, &fakeClock{now: mustDate(today)}, zap.NewNop())
	events, err := svc.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return events
}

func TestListEvents_ExpandsHolidaysForSurroundingYears(t *testing.T) {
	events := listCalendar(t, &fakeEventStore{}, "2026-06-01")

	ids := eventIDs(events)
	for _, want := range []string{
		"holiday-2025-12-25",
		"holiday-2026-12-25",
		"holiday-2027-12-25",
		"holiday-2026-06-12",
	} {
		if !ids[want] {
			t.Errorf("expected generated event %s", want)
		}
	}
	if ids["holiday-2024-12-25"] || ids["holiday-2028-12-25"] {
		t.Error("expansion should cover only the three-year window")
	}
}

func TestListEvents_PayrollShiftsSundayToSaturday(t *testing.T) {
	events := listCalendar(t, &fakeEventStore{}, "2026-06-01")

	ids := eventIDs(events)
	// 2026-02-15 and 2026-05-31 fall on Sundays.
	if !ids["payroll-2026-02-14"] {
		t.Error("expected mid-month payroll moved to Saturday 2026-02-14")
	}
	if ids["payroll-2026-02-15"] {
		t.Error("Sunday payroll date should not appear")
	}
	if !ids["payroll-2026-05-30"] {
		t.Error("expected month-end payroll moved to Saturday 2026-05-30")
	}
	if ids["payroll-2026-05-31"] {
		t.Error("Sunday month-end payroll should not appear")
	}
	// 2026-01-15 is a Thursday and stays put.
	if !ids["payroll-2026-01-15"] {
		t.Error("expected weekday payroll to stay on the 15th")
	}
}

func TestListEvents_MergesStoredEventsSorted(t *testing.T) {
	store := &fakeEventStore{events: []domain.CalendarEvent{
		{ID: "ev-2", Title: "Fire drill", Date: "2026-03-10", Type: domain.EventGeneric},
		{ID: "ev-1", Title: "Board meeting", Date: "2026-02-01", Type: domain.EventMeeting},
	}}
	events := listCalendar(t, store, "2026-06-01")

	if !sort.SliceIsSorted(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].ID < events[j].ID
	}) {
		t.Error("expected events sorted by date then id")
	}

	ids := eventIDs(events)
	if !ids["ev-1"] || !ids["ev-2"] {
		t.Error("expected stored events in the merged list")
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := service.NewCalendarService(&fakeEventStore{}, &fakeClock{now: mustDate("2026-06-01")}, zap.NewNop())

	cases := []struct {
		name string
		req  domain.EventRequest
	}{
		{"missing title", domain.EventRequest{Date: "2026-07-01", Type: domain.EventMeeting}},
		{"bad date", domain.EventRequest{Title: "x", Date: "July 1", Type: domain.EventMeeting}},
		{"holiday type rejected", domain.EventRequest{Title: "x", Date: "2026-07-01", Type: domain.EventHoliday}},
		{"payroll type rejected", domain.EventRequest{Title: "x", Date: "2026-07-01", Type: domain.EventPayroll}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), &tc.req)
			var verr *domain.ErrValidation
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	created, err := svc.CreateEvent(context.Background(), &domain.EventRequest{
		Title: "Board meeting", Date: "2026-07-01", Type: domain.EventMeeting,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == "" {
		t.Error("expected store-assigned id")
	}
}

func TestDeleteEvent_RejectsGeneratedEntries(t *testing.T) {
	store := &fakeEventStore{}
	svc := service.NewCalendarService(store, &fakeClock{now: mustDate("2026-06-01")}, zap.NewNop())

	for _, id := range []string{"holiday-2026-12-25", "payroll-2026-01-15"} {
		if err := svc.DeleteEvent(context.Background(), id); err == nil {
			t.Errorf("expected deletion of %s to be rejected", id)
		}
	}

	if err := svc.DeleteEvent(context.Background(), "ev-1"); err != nil {
		t.Fatalf("expected user event deletion to pass through, got %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "ev-1" {
		t.Errorf("expected ev-1 deleted, got %v", store.deleted)
	}
}

func eventIDs(events []domain.CalendarEvent) map[string]bool {
	ids := make(map[string]bool, len(events))
	for _, e := range events {
		ids[e.ID] = true
	}
	return ids
}
