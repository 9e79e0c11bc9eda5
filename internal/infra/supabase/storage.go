package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Supabase Storage — implements port.DocumentStore
// ============================================================

// UploadDocument uploads a compliance document to the configured
// Storage bucket and returns its public URL. Re-uploading the same
// object name overwrites the previous version.
func (c *Client) UploadDocument(ctx context.Context, name, contentType string, data []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UploadDocument")
	defer span.End()

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.storageBucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}

	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: storage upload failed",
			zap.String("object", name),
			zap.Error(err),
		)
		return "", &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("supabase: storage upload non-2xx",
			zap.String("object", name),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", &domain.ErrExternalService{
			Service: "supabase/storage",
			Err:     fmt.Errorf("upload %s returned %d: %s", name, resp.StatusCode, string(body)),
		}
	}

	c.logger.Info("supabase: document uploaded",
		zap.String("object", name),
		zap.String("bucket", c.storageBucket),
		zap.Int("size", len(data)),
	)

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.storageBucket, name), nil
}
