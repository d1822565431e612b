// Package service implements the core request-forwarding logic.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/wasselle/admin-gateway/internal/client"
	"github.com/wasselle/admin-gateway/internal/config"
	"github.com/wasselle/admin-gateway/internal/model"
)

// Sentinel errors for the terminal branches of the forwarding state machine.
var (
	// ErrMissingPath is returned when neither the X-API-Path header nor the
	// path query parameter carries a backend-relative path.
	ErrMissingPath = errors.New("missing X-API-Path header")

	// ErrInvalidPath is returned for paths that would escape the backend API
	// root (absolute URLs, traversal segments).
	ErrInvalidPath = errors.New("invalid API path")

	// ErrEmptyUpstreamBody is returned when the backend responds with a
	// zero-length body. An empty body is never relayed as success.
	ErrEmptyUpstreamBody = errors.New("backend returned empty response")

	// ErrMalformedBody is returned when a declared multipart body cannot be
	// parsed.
	ErrMalformedBody = errors.New("malformed request body")
)

const (
	// HeaderAPIPath carries the backend-relative API path on inbound requests.
	HeaderAPIPath = "X-API-Path"

	// queryAPIPath is the compatibility fallback for the path header.
	queryAPIPath = "path"

	// imageEndpoint is the backend route that serves stored upload images.
	imageEndpoint = "uploads/image.php"

	defaultImageType = "image/jpeg"

	userAgent = "wasselle-admin-gateway/1.0"
)

// GatewayService turns inbound browser requests into backend calls and
// normalizes the responses. It is stateless; every invocation performs
// exactly one upstream call.
type GatewayService struct {
	client  *client.BackendClient
	cfg     *config.Config
	logger  *slog.Logger
	baseURL string
}

// NewGatewayService creates a GatewayService.
func NewGatewayService(c *client.BackendClient, cfg *config.Config, logger *slog.Logger) (*GatewayService, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}

	return &GatewayService{
		client:  c,
		cfg:     cfg,
		logger:  logger.With("component", "gateway_service"),
		baseURL: strings.TrimSuffix(u.String(), "/"),
	}, nil
}

// ResolvePath extracts the backend-relative API path from the request.
// The X-API-Path header wins; the path query parameter is the fallback.
func (s *GatewayService) ResolvePath(header http.Header, query url.Values) (string, error) {
	p := header.Get(HeaderAPIPath)
	if p == "" {
		p = query.Get(queryAPIPath)
	}
	if p == "" {
		return "", ErrMissingPath
	}

	p = strings.TrimPrefix(p, "/")
	if err := validateAPIPath(p); err != nil {
		return "", err
	}
	return p, nil
}

// validateAPIPath rejects paths that would point the upstream call outside
// the backend API root.
func validateAPIPath(p string) error {
	if p == "" {
		return ErrMissingPath
	}
	if strings.Contains(p, "://") || strings.HasPrefix(p, "//") {
		return fmt.Errorf("%w: absolute URL %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(strings.SplitN(p, "?", 2)[0], "/") {
		if seg == ".." {
			return fmt.Errorf("%w: traversal in %q", ErrInvalidPath, p)
		}
	}
	return nil
}

// IsImageRequest reports whether the query targets the image sub-route.
func (s *GatewayService) IsImageRequest(query url.Values) bool {
	return query.Get(queryAPIPath) == imageEndpoint && query.Get("image") != ""
}

// Forward relays a request to the backend and normalizes the response.
// The upstream body is always read fully as text before any JSON parse is
// attempted; content-type headers are never trusted for that decision.
func (s *GatewayService) Forward(fr *model.ForwardRequest) (*model.ForwardResponse, error) {
	target := s.baseURL + "/" + fr.APIPath

	body, contentType, err := s.buildUpstreamBody(fr)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("User-Agent", userAgent)
	if auth := fr.Header.Get("Authorization"); auth != "" {
		header.Set("Authorization", auth)
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	s.logger.Debug("forwarding request",
		"method", fr.Method,
		"api_path", fr.APIPath,
		"auth", authPrefix(fr.Header.Get("Authorization")),
	)

	resp, err := s.client.DoStream(fr.Ctx, fr.Method, target, header, body)
	if err != nil {
		return nil, fmt.Errorf("forward to upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyUpstreamBody
	}

	out := &model.ForwardResponse{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}

	if json.Valid(raw) {
		out.IsJSON = true
		out.ContentType = "application/json"
	} else {
		// Non-JSON bodies (PHP warnings, HTML error pages) are relayed
		// verbatim with the backend's original status code.
		out.ContentType = resp.Header.Get("Content-Type")
		if out.ContentType == "" {
			out.ContentType = "text/plain; charset=utf-8"
		}
	}

	s.logger.Debug("upstream response",
		"status", resp.StatusCode,
		"json", out.IsJSON,
		"bytes", len(raw),
	)

	return out, nil
}

// buildUpstreamBody prepares the outbound body and its Content-Type.
// Multipart bodies are reconstructed part by part so field names, filenames
// and part content-types survive the hop; everything else passes through,
// defaulting to JSON for methods that carry a body.
func (s *GatewayService) buildUpstreamBody(fr *model.ForwardRequest) (io.Reader, string, error) {
	if fr.Method == http.MethodGet || fr.Method == http.MethodHead || fr.Body == nil {
		return nil, "", nil
	}

	mediaType, params, err := mime.ParseMediaType(fr.ContentType)
	if err == nil && strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, "", fmt.Errorf("%w: multipart without boundary", ErrMalformedBody)
		}
		return rebuildMultipart(fr.Body, boundary)
	}

	if fr.ContentType != "" {
		return fr.Body, fr.ContentType, nil
	}
	return fr.Body, "application/json", nil
}

// rebuildMultipart re-encodes an inbound multipart stream with a fresh
// boundary, preserving field names and, for file parts, the original
// filename and content-type.
func rebuildMultipart(r io.Reader, boundary string) (io.Reader, string, error) {
	mr := multipart.NewReader(r, boundary)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}

		var dst io.Writer
		if filename := part.FileName(); filename != "" {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, part.FormName(), filename))
			if ct := part.Header.Get("Content-Type"); ct != "" {
				h.Set("Content-Type", ct)
			}
			dst, err = w.CreatePart(h)
		} else {
			dst, err = w.CreateFormField(part.FormName())
		}
		if err != nil {
			return nil, "", fmt.Errorf("rebuild multipart part: %w", err)
		}

		if _, err := io.Copy(dst, part); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		_ = part.Close()
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// FetchImage retrieves a stored upload from the backend image endpoint.
// imagePath is the backend-relative path of the stored file, e.g.
// "drivers/5/face.jpg".
func (s *GatewayService) FetchImage(ctx context.Context, imagePath string) (*model.Image, error) {
	target := s.baseURL + "/" + imageEndpoint + "?path=" + url.QueryEscape(imagePath)

	header := make(http.Header)
	header.Set("User-Agent", userAgent)

	resp, err := s.client.DoStream(ctx, http.MethodGet, target, header, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: upstream status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch image: %w", ErrEmptyUpstreamBody)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultImageType
	}

	return &model.Image{ContentType: contentType, Body: raw}, nil
}

// authPrefix returns a bounded prefix of an Authorization value for logging.
// The full credential is never logged.
func authPrefix(auth string) string {
	if auth == "" {
		return ""
	}
	if len(auth) > 16 {
		return auth[:16] + "..."
	}
	return auth
}
