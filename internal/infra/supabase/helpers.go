package supabase

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ============================================================
// HTTP helpers for POST, PATCH, DELETE
// ============================================================

func (c *Client) doPost(ctx context.Context, table string, data any, prefer string) ([]byte, error) {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, table, jsonBody, prefer)
	if err != nil {
		c.logger.Warn("supabase: POST failed", zap.String("table", table), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("supabase: POST OK", zap.String("table", table))
	return body, nil
}

func (c *Client) doPatch(ctx context.Context, path string, data map[string]any) error {
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := c.doRequest(ctx, http.MethodPatch, path, jsonBody, "return=minimal"); err != nil {
		c.logger.Warn("supabase: PATCH failed", zap.String("path", path), zap.Error(err))
		return err
	}

	c.logger.Debug("supabase: PATCH OK", zap.String("path", path))
	return nil
}

func (c *Client) doDelete(ctx context.Context, path string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, "return=minimal"); err != nil {
		c.logger.Warn("supabase: DELETE failed", zap.String("path", path), zap.Error(err))
		return err
	}

	c.logger.Debug("supabase: DELETE OK", zap.String("path", path))
	return nil
}

// decodeRows unmarshals a PostgREST array response, treating an empty
// body as an empty result set.
func decodeRows[T any](body []byte) ([]T, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
