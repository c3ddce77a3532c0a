// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, the response hardening middleware. The
// JSON API and the widget assets share it; the widget is loaded inside the
// storefront, so framing can be opened to a list of ancestors instead of the
// default X-Frame-Options: DENY.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only honored on HTTPS requests
	HSTSMaxAge   time.Duration // <= 0 means 180 days
	NoStore      bool          // Cache-Control: no-store (+ Pragma, Expires)
	EnablePolicy bool          // Permissions-Policy, X-Permitted-Cross-Domain-Policies
	// FrameAncestors, when set, replaces X-Frame-Options: DENY with a CSP
	// frame-ancestors directive listing these sources.
	FrameAncestors []string
}

// SecurityHeaders returns a Gin middleware that adds the configured headers.
// It always sets X-Content-Type-Options: nosniff and Referrer-Policy:
// no-referrer, and exposes X-Request-ID to browser clients when present.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	var frameCSP string
	if len(opt.FrameAncestors) > 0 {
		frameCSP = "frame-ancestors " + strings.Join(opt.FrameAncestors, " ")
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		if frameCSP != "" {
			h.Set("Content-Security-Policy", frameCSP)
		} else {
			h.Set("X-Frame-Options", "DENY")
		}

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if rid := h.Get(requestIDHeader); rid != "" {
			const hdr = "Access-Control-Expose-Headers"
			switch cur := h.Get(hdr); {
			case cur == "":
				h.Set(hdr, requestIDHeader)
			case !strings.Contains(cur, requestIDHeader):
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

// isHTTPS reports whether the request arrived over TLS, directly or through
// a proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
