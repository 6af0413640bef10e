package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

// RateLimit limits each client IP to perSecond requests. Zero or less disables it.
func RateLimit(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(perSecond)))
}

func (h *Handler) ready(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := h.state.Load()
		switch {
		case st == nil:
			return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset loading")
		case st.err != nil:
			return echo.NewHTTPError(http.StatusInternalServerError, "dataset unavailable").SetInternal(st.err)
		}
		return next(c)
	}
}

// etag tags every response with the dataset fingerprint. The dataset never
// changes while the process runs, so a matching If-None-Match is always fresh.
func (h *Handler) etag(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tag := h.state.Load().etag
		c.Response().Header().Set(headerETag, tag)
		if match := c.Request().Header.Get(headerIfNoneMatch); match != "" && strings.Contains(match, tag) {
			return c.NoContent(http.StatusNotModified)
		}
		return next(c)
	}
}
