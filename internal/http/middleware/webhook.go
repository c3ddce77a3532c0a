// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements VerifyWebhook, the signature check in front of the
// order webhook. The storefront signs the raw request body with the shared
// secret (HMAC-SHA256) and sends the base64 digest in X-Shopify-Hmac-Sha256.
// Requests that fail verification never reach the handler.
//
// The verified body is stashed in the Gin context (RawBody) and restored on
// the request so handlers can read it once more.
package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Webhook headers sent by the storefront platform.
const (
	HeaderWebhookHmac  = "X-Shopify-Hmac-Sha256"
	HeaderWebhookShop  = "X-Shopify-Shop-Domain"
	HeaderWebhookTopic = "X-Shopify-Topic"
	HeaderWebhookID    = "X-Shopify-Webhook-Id"
)

const ctxKeyRawBody = "webhook.body"

// SignWebhook returns the base64 HMAC-SHA256 of body under secret, the value
// expected in HeaderWebhookHmac.
func SignWebhook(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// RawBody returns the body verified by VerifyWebhook.
func RawBody(c *gin.Context) ([]byte, bool) {
	v, ok := c.Get(ctxKeyRawBody)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// VerifyWebhook rejects requests whose HeaderWebhookHmac does not match the
// body signed with secret.
//
// Responses:
//   - 503 verification_unavailable when no secret is configured
//   - 413 payload_too_large when the body exceeds the request cap
//   - 401 signature_missing / signature_invalid / signature_mismatch
func VerifyWebhook(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		if len(strings.TrimSpace(secret)) == 0 {
			webhookVerifications.WithLabelValues("secret_not_configured").Inc()
			abortJSON(c, http.StatusServiceUnavailable, "verification_unavailable", "webhook secret not configured")
			return
		}

		sig := strings.TrimSpace(c.GetHeader(HeaderWebhookHmac))
		if sig == "" {
			webhookVerifications.WithLabelValues("signature_missing").Inc()
			abortJSON(c, http.StatusUnauthorized, "signature_missing", "signature header missing")
			return
		}
		got, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			webhookVerifications.WithLabelValues("signature_invalid").Inc()
			abortJSON(c, http.StatusUnauthorized, "signature_invalid", "signature encoding invalid")
			return
		}

		body, err := readAndRestoreBody(c.Request)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortJSON(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			abortJSON(c, http.StatusBadRequest, "bad_request", "unable to read body")
			return
		}

		mac := hmac.New(sha256.New, key)
		mac.Write(body)
		if !hmac.Equal(got, mac.Sum(nil)) {
			webhookVerifications.WithLabelValues("signature_mismatch").Inc()
			abortJSON(c, http.StatusUnauthorized, "signature_mismatch", "signature verification failed")
			return
		}

		webhookVerifications.WithLabelValues("ok").Inc()
		c.Set(ctxKeyRawBody, body)
		c.Next()
	}
}

func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	buf, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(buf))
	return buf, nil
}

// abortJSON writes the shared error envelope and stops the chain.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
