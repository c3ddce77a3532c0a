// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides correlation IDs, the request-scoped logger and panic
// recovery:
//
//   - RequestID() reuses X-Request-ID or generates a UUID, echoing it back.
//   - WithRequestLogger() attaches a zerolog.Logger carrying request_id, method,
//     route and shop to both the Gin context (LoggerFrom) and the request
//     context (zerolog.Ctx), so services log with the same fields.
//   - Recovery() turns panics into the JSON 500 envelope and logs the stack.
//
// Order: RequestID → RedactingLogger (which calls WithRequestLogger) → Recovery.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-personalizer-backend/internal/sysutil"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestID attaches (or propagates) a correlation identifier per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// WithRequestLogger builds the request-scoped logger and stores it. It
// returns the logger so callers can emit the access log with it.
func WithRequestLogger(c *gin.Context) *zerolog.Logger {
	v, _ := c.Get(requestIDKey)
	rid := sysutil.FirstNonEmpty(asString(v), c.Writer.Header().Get(requestIDHeader), c.GetHeader(requestIDHeader))
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	shop := sysutil.ShopDomain(
		c.GetHeader(HeaderWebhookShop),
		c.GetHeader(HeaderShopDomain),
		c.Query("shop"),
	)

	l := log.With().
		Str("request_id", rid).
		Str("method", c.Request.Method).
		Str("path", path).
		Str("shop", shop).
		Logger()

	c.Set(loggerKey, &l)
	c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
	return &l
}

// Recovery intercepts panics, logs a stack trace, and returns a JSON 500
// envelope when nothing was written yet.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				LoggerFrom(c).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header(requestIDHeader, asString(rid))
					abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or the global logger when
// none was attached. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
