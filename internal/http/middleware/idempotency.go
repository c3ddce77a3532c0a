// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements delivery dedupe for webhooks. The storefront retries
// notifications with the same delivery id (X-Shopify-Webhook-Id); the
// middleware validates that id, stashes it in the Gin context and consults a
// lookup to flag redeliveries so that:
//   - handlers can read the id (GetIdempotencyKey) and detect replays (IsReplay)
//   - the rate limiter lets replays through without consuming tokens
//
// Persistence stays behind the narrow IdempotencyLookup function; the
// handler's service decides what a replay returns.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-personalizer-backend/internal/sysutil"
)

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the delivery id validated by WebhookIdempotency.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found the delivery already processed.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures WebhookIdempotency.
type IdempotencyOptions struct {
	// Header carrying the delivery id. Defaults to HeaderWebhookID.
	Header string
	// MaxLen caps the accepted id length. Values <= 0 default to 128, the
	// width of the stored key column.
	MaxLen int
	// Pattern restricts allowed characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup answers whether delivery key of shop was already
// processed and is still remembered at now. Lookup errors do not block the
// request; the service layer dedupes again before running the pipeline.
type IdempotencyLookup func(ctx context.Context, shop, key string, now time.Time) (exists bool, err error)

// WebhookIdempotency validates the delivery id header (when present) and
// flags redeliveries. An invalid id is rejected with 400 bad_webhook_id; an
// absent id is a no-op.
func WebhookIdempotency(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	header := opts.Header
	if header == "" {
		header = HeaderWebhookID
	}
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 128
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(header))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_webhook_id", "invalid "+header)
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			shop := sysutil.ShopDomain(c.GetHeader(HeaderWebhookShop))
			if exists, _ := lookup(c.Request.Context(), shop, key, time.Now().UTC()); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}
		c.Next()
	}
}
