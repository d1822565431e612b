// Package dispatcher is the typed client for the Wasselle admin backend.
// Every operation builds a backend-relative path and submits it through the
// gateway; responses are decoded into typed envelopes.
package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Mode selects the runtime behavior of the fallback path.
type Mode string

const (
	// ModeDevelopment permits one direct-to-backend retry when the gateway
	// call fails. Browsers block that call in production, so it exists only
	// to unblock local development.
	ModeDevelopment Mode = "development"

	// ModeProduction never bypasses the gateway.
	ModeProduction Mode = "production"
)

// headerAPIPath mirrors the gateway's path resolution header.
const headerAPIPath = "X-API-Path"

// Config holds dispatcher settings. All requests go to GatewayURL;
// UpstreamURL is consulted only by the development fallback.
type Config struct {
	GatewayURL  string
	UpstreamURL string
	Mode        Mode
	Timeout     time.Duration
}

// Client dispatches typed operations to the backend through the gateway.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	session    SessionStore
}

// New creates a Client. A nil store gets an in-memory one.
func New(cfg Config, store SessionStore, logger *slog.Logger) *Client {
	if store == nil {
		store = NewMemoryStore()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeProduction
	}
	cfg.GatewayURL = strings.TrimSuffix(cfg.GatewayURL, "/")
	cfg.UpstreamURL = strings.TrimSuffix(cfg.UpstreamURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "dispatcher"),
		session:    store,
	}
}

// IsAuthenticated reports whether a bearer token is stored. Expiry is
// enforced by the backend, not here.
func (c *Client) IsAuthenticated() bool {
	s, ok := c.session.Load()
	return ok && s.Token != ""
}

// Admin returns the cached admin profile from the session store.
func (c *Client) Admin() (Admin, bool) {
	s, ok := c.session.Load()
	if !ok || s.Token == "" {
		return Admin{}, false
	}
	return s.Admin, true
}

// ImageURL builds the gateway URL that streams a stored backend upload.
func (c *Client) ImageURL(path string) string {
	return c.cfg.GatewayURL + "?path=uploads/image.php&image=" + url.QueryEscape(path)
}

// do performs one backend operation through the gateway and decodes the JSON
// response into out, which must embed Envelope. Application failures
// (non-2xx status or success=false) surface as *APIError; connection-level
// failures as *TransportError.
func (c *Client) do(ctx context.Context, method, apiPath string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	status, text, err := c.send(ctx, method, c.cfg.GatewayURL, apiPath, payload, true)
	if err != nil {
		return &TransportError{Err: err}
	}

	// Development-only fallback: one direct cross-origin call to the backend
	// when the gateway path fails. Production never attempts this.
	if status >= http.StatusBadRequest && c.cfg.Mode == ModeDevelopment && c.cfg.UpstreamURL != "" {
		c.logger.Warn("gateway call failed, retrying direct",
			"status", status,
			"api_path", apiPath,
			"body", snippet(text),
		)

		directURL := c.cfg.UpstreamURL + "/" + apiPath
		if ds, dt, derr := c.send(ctx, method, directURL, "", payload, false); derr == nil && ds < http.StatusBadRequest {
			status, text = ds, dt
		}
	}

	if strings.TrimSpace(text) == "" {
		return &APIError{StatusCode: status, Message: "Empty response from server"}
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &APIError{
			StatusCode: status,
			Message:    "Invalid JSON response: " + snippet(text),
		}
	}

	env := out.(envelopeCarrier).envelope()
	if status >= http.StatusBadRequest || !env.Success {
		return &APIError{StatusCode: status, Message: env.Message}
	}

	return nil
}

// send issues a single HTTP request and returns the status code and body
// text. When viaGateway is set the backend path travels in the X-API-Path
// header; otherwise it is already part of the URL.
func (c *Client) send(ctx context.Context, method, baseURL, apiPath string, payload []byte, viaGateway bool) (int, string, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL, body)
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}

	if viaGateway {
		req.Header.Set(headerAPIPath, apiPath)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := c.session.Load(); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, string(raw), nil
}

// snippet bounds response text for error messages and logs.
func snippet(s string) string {
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// pathWithQuery appends encoded query parameters to a backend path.
func pathWithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
