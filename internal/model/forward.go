// Package model defines shared protocol types for the gateway.
package model

import (
	"context"
	"io"
	"net/http"
)

// ForwardRequest represents an inbound request to be relayed to the backend.
// APIPath is the backend-relative path (it may carry its own query string,
// e.g. "admin/users/list.php?role=driver&page=1").
type ForwardRequest struct {
	Ctx         context.Context
	Method      string
	APIPath     string
	Header      http.Header
	ContentType string
	Body        io.Reader
}

// ForwardResponse is the normalized backend response. Body holds the raw
// upstream bytes; IsJSON reports whether they parsed as JSON, in which case
// the bytes are relayed verbatim under application/json.
type ForwardResponse struct {
	StatusCode  int
	ContentType string
	IsJSON      bool
	Body        []byte
}

// UpstreamResponse is the raw backend response before normalization.
// The caller owns Body and must close it.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Image is a binary image fetched through the upload sub-route.
type Image struct {
	ContentType string
	Body        []byte
}
