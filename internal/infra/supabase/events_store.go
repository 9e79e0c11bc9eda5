package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Calendar events store — implements port.EventStore
// ============================================================

func (c *Client) ListEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListEvents")
	defer span.End()

	body, err := c.doGet(ctx, "events?order=date.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/events", Err: err}
	}

	events, err := decodeRows[domain.CalendarEvent](body)
	if err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateEvent")
	defer span.End()

	row := map[string]any{
		"title": event.Title,
		"date":  event.Date,
		"type":  event.Type,
	}
	if event.Description != "" {
		row["description"] = event.Description
	}

	body, err := c.doPost(ctx, "events", row, "")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/events", Err: err}
	}

	rows, err := decodeRows[domain.CalendarEvent](body)
	if err != nil {
		return nil, fmt.Errorf("decode event insert: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no result from events insert")
	}
	return &rows[0], nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteEvent")
	defer span.End()

	if err := c.doDelete(ctx, fmt.Sprintf("events?id=eq.%s", eventID)); err != nil {
		return &domain.ErrExternalService{Service: "supabase/events", Err: err}
	}
	return nil
}
