package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wasselle/admin-gateway/internal/model"
	"github.com/wasselle/admin-gateway/internal/service"
)

// errorEnvelope is the JSON error shape the admin frontend expects.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// GatewayHandler relays admin-console requests to the backend PHP API.
type GatewayHandler struct {
	service *service.GatewayService
	logger  *slog.Logger
}

// NewGatewayHandler creates a GatewayHandler.
func NewGatewayHandler(svc *service.GatewayService, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		service: svc,
		logger:  logger.With("component", "gateway_handler"),
	}
}

// Handle forwards the request to the backend and relays the normalized
// response. Preflight requests short-circuit before any path resolution.
func (h *GatewayHandler) Handle(c echo.Context) error {
	req := c.Request()

	if req.Method == http.MethodOptions {
		return c.NoContent(http.StatusOK)
	}

	query := c.QueryParams()
	if h.service.IsImageRequest(query) {
		return h.handleImage(c, query.Get("image"))
	}

	apiPath, err := h.service.ResolvePath(req.Header, query)
	if err != nil {
		return h.mapError(c, err)
	}

	fr := &model.ForwardRequest{
		Ctx:         req.Context(),
		Method:      req.Method,
		APIPath:     apiPath,
		Header:      req.Header,
		ContentType: req.Header.Get("Content-Type"),
		Body:        requestBody(req),
	}

	resp, err := h.service.Forward(fr)
	if err != nil {
		return h.mapError(c, err)
	}

	if resp.IsJSON {
		return c.JSONBlob(resp.StatusCode, resp.Body)
	}
	return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
}

// handleImage streams a stored upload back to the browser. Images are
// immutable on the backend, so the response is marked cacheable for a year.
func (h *GatewayHandler) handleImage(c echo.Context, imagePath string) error {
	img, err := h.service.FetchImage(c.Request().Context(), imagePath)
	if err != nil {
		h.logger.Warn("image fetch failed",
			"image", imagePath,
			"err", err,
		)
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Image not found",
		})
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, img.ContentType, img.Body)
}

// mapError converts every forwarding failure into a terminal, well-formed
// HTTP response.
func (h *GatewayHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("gateway error",
		"err", err,
		"method", c.Request().Method,
		"api_path", c.Request().Header.Get(service.HeaderAPIPath),
	)

	switch {
	case errors.Is(err, service.ErrMissingPath):
		return c.JSON(http.StatusBadRequest, errorEnvelope{
			Message: "Missing X-API-Path header",
		})

	case errors.Is(err, service.ErrInvalidPath):
		return c.JSON(http.StatusBadRequest, errorEnvelope{
			Message: "Invalid API path",
		})

	case errors.Is(err, service.ErrMalformedBody):
		return c.JSON(http.StatusBadRequest, errorEnvelope{
			Message: "Malformed request body",
		})

	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, errorEnvelope{
			Message: "Backend request timeout",
		})

	case errors.Is(err, service.ErrEmptyUpstreamBody):
		return c.JSON(http.StatusBadGateway, errorEnvelope{
			Message: "Backend server returned empty response",
		})
	}

	return c.JSON(http.StatusInternalServerError, errorEnvelope{
		Message: "Proxy server error",
		Error:   err.Error(),
	})
}

// requestBody returns the inbound body reader, or nil for bodyless methods.
func requestBody(req *http.Request) io.Reader {
	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return nil
	}
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}
	return req.Body
}
