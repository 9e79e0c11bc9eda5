package supabase

import (
	"context"
	"fmt"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"
)

// ============================================================
// Application markers store — implements port.MarkerStore
// ============================================================

type markerRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetMarker returns the value stored under key, or ErrNotFound when
// the key has never been written.
func (c *Client) GetMarker(ctx context.Context, key string) (string, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetMarker")
	defer span.End()

	body, err := c.doGet(ctx, fmt.Sprintf("app_markers?key=eq.%s&limit=1", key))
	if err != nil {
		return "", &domain.ErrExternalService{Service: "supabase/app_markers", Err: err}
	}

	rows, err := decodeRows[markerRow](body)
	if err != nil {
		return "", fmt.Errorf("decode marker: %w", err)
	}
	if len(rows) == 0 {
		return "", &domain.ErrNotFound{Resource: "marker", ID: key}
	}
	return rows[0].Value, nil
}

// SetMarker upserts the key/value pair so repeated writes to the same
// key overwrite the previous value.
func (c *Client) SetMarker(ctx context.Context, key, value string) error {
	ctx, span := tracer.Start(ctx, "Supabase.SetMarker")
	defer span.End()

	row := markerRow{Key: key, Value: value}
	_, err := c.doPost(ctx, "app_markers?on_conflict=key", row, "return=minimal,resolution=merge-duplicates")
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/app_markers", Err: err}
	}
	return nil
}
