package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS header values served on every response. The admin console is a
// public single-page app, so the origin is wildcarded; X-API-Path must be
// allowed or the browser strips it from proxied calls.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-API-Path"
)

// CORS returns an Echo middleware that attaches the gateway's CORS header
// set to every response and answers preflight requests with an empty 200.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
			h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}
