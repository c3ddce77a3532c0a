// Webhook HTTP handlers.
//
// POST /webhooks/orders/create receives the platform's "order created"
// notification. The route is mounted behind middleware.VerifyWebhook, so the
// body read here has already been authenticated. A delivery id seen before is
// answered from the stored outcome and sets `Idempotency-Replayed: true`.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-personalizer-backend/internal/http/middleware"
	"github.com/tbourn/go-personalizer-backend/internal/sysutil"
)

// IgnoredResponse acknowledges an order that carries no customization.
type IgnoredResponse struct {
	Status string `json:"status" example:"ignored"`
}

// OrderCreated godoc
// @ID          orderCreated
// @Summary     Order created webhook
// @Description Records the customization requests of a new order and compiles its production record. Orders without customizations are acknowledged and ignored. Processing failures are stored on the record and still answer 200.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
//
// @Param       X-Shopify-Hmac-Sha256  header  string  true  "Base64 HMAC-SHA256 of the body"
// @Param       X-Shopify-Shop-Domain  header  string  true  "Shop domain"  example(demo.myshopify.com)
// @Param       X-Shopify-Webhook-Id   header  string  false "Delivery id used for deduplication"
// @Param       body                   body    object  true  "Order payload"
//
// @Success     200  {object}  domain.OrderIntake
// @Success     200  {object}  handlers.IgnoredResponse
// @Header      200  {string}  Idempotency-Replayed  "true when the delivery was already processed"
// @Failure     400  {object}  handlers.ErrorResponse "Malformed order"
// @Failure     401  {object}  handlers.ErrorResponse "Signature rejected"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /webhooks/orders/create [post]
func (h *Handlers) OrderCreated(c *gin.Context) {
	body, found := middleware.RawBody(c)
	if !found {
		var err error
		if body, err = c.GetRawData(); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unable to read body")
			return
		}
	}

	shop := sysutil.ShopDomain(c.GetHeader(middleware.HeaderWebhookShop))
	key, _ := middleware.GetIdempotencyKey(c)

	rec, replayed, err := h.webhooks.Deliver(c.Request.Context(), shop, key, body)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}

	if replayed {
		c.Header("Idempotency-Replayed", "true")
	}
	if rec == nil {
		ok(c, http.StatusOK, IgnoredResponse{Status: "ignored"})
		return
	}
	ok(c, http.StatusOK, rec)
}
