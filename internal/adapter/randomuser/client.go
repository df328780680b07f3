// Package randomuser talks to the random-user HTTP API and turns its
// responses into domain users.
package randomuser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	pkgerrors "usertables-generator/pkg/errors"
)

// DefaultEndpoint is the API address used when none is configured.
const DefaultEndpoint = "http://randomuser.ru/api.json"

// Client performs single-attempt GET requests against the API endpoint.
type Client struct {
	http     *http.Client // HTTP client owned by this Client
	endpoint string       // Full URL of the API
	log      *zap.Logger  // Structured logger
}

// NewClient creates a new API client. A nil httpClient falls back to a
// client with no timeout.
func NewClient(httpClient *http.Client, endpoint string, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: httpClient, endpoint: endpoint, log: log}
}

// Endpoint returns the URL the client requests.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues one GET request and returns the response body as text.
// Every failure is a *errors.TransportError carrying the endpoint.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", pkgerrors.NewTransportError(c.endpoint, 0, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return "", pkgerrors.NewTransportError(c.endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("api returned unexpected status",
			zap.String("endpoint", c.endpoint),
			zap.Int("status_code", resp.StatusCode),
		)
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", pkgerrors.NewTransportError(c.endpoint, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read api response", zap.String("endpoint", c.endpoint), zap.Error(err))
		return "", pkgerrors.NewTransportError(c.endpoint, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}
	if !utf8.Valid(body) {
		return "", pkgerrors.NewTransportError(c.endpoint, resp.StatusCode, errors.New("response body is not valid UTF-8"))
	}

	c.log.Debug("api response received",
		zap.String("endpoint", c.endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}
