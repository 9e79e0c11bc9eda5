// Package supabase provides a client for Supabase (PostgREST + Storage).
// It is the only persistence layer: tenants, bills, compliance
// requirements, the cash ledger, calendar events, staff and the
// generator markers all live in Supabase tables.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to the Supabase PostgREST and Storage APIs.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	storageBucket  string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	logger         *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey, storageBucket string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		storageBucket:  storageBucket,
		cb:             cb,
		cfg:            cfg,
		logger:         logger,
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
}

// doGet executes an authenticated GET against PostgREST, retried with
// backoff behind the circuit breaker. Reads are idempotent; writes go
// through doPost/doPatch/doDelete and are attempted once.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var reqErr error
			body, reqErr = c.doRequest(ctx, http.MethodGet, path, nil, "")
			return reqErr
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// doRequest executes a single authenticated request to Supabase PostgREST.
// prefer overrides the Prefer header; empty means return=representation.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte, prefer string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.logger.Error("supabase: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if prefer == "" {
		prefer = "return=representation"
	}
	req.Header.Set("Prefer", prefer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("supabase: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase %s %s returned %d: %s", method, path, resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// Ping issues a trivial read to verify the backend is reachable.
// Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "app_markers?select=key&limit=1", nil, "")
	return err
}
