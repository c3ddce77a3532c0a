// Order HTTP handlers.
//
// This file exposes the intake records created from order webhooks:
//   - GET /orders                     (list, newest first, ETag support)
//   - GET /orders/{id}                (single record)
//   - GET /orders/{id}/production     (production record of a completed order)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
	"github.com/tbourn/go-personalizer-backend/internal/utils"
)

// ListOrdersResponse wraps a page of intake records.
type ListOrdersResponse struct {
	Orders []domain.OrderIntake `json:"orders"`
	Count  int                  `json:"count"`
}

// ListOrders godoc
// @ID          listOrders
// @Summary     List order intake records
// @Description Returns the shop's intake records, newest first, optionally filtered by status. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Orders
// @Produce     json
//
// @Param       shop           query   string  false "Shop domain"                 example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string  false "Shop domain (when no shop query)"
// @Param       status         query   string  false "Status filter"               Enums(pending, processing, completed, error)
// @Param       limit          query   int     false "Maximum records returned"    minimum(1) maximum(250) default(50)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object}  handlers.ListOrdersResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /orders [get]
func (h *Handlers) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()
	shop := shopDomain(c)
	status := c.Query("status")
	limit, err := utils.ParseLimit(c.Query("limit"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	// ETag pre-check (best effort).
	if shop != "" {
		if count, maxTS, err := h.intakes.Stats(ctx, shop, status); err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"orders:%s:%s:%d:%d:%d"`, shop, status, limit, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.intakes.Query(ctx, shop, status, limit)
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, ListOrdersResponse{Orders: items, Count: len(items)})
}

// GetOrder godoc
// @ID          getOrder
// @Summary     Get an order intake record
// @Tags        Orders
// @Produce     json
//
// @Param       id             path    string  true  "Intake ID (UUID)"  format(uuid)
// @Param       shop           query   string  false "Shop domain"       example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string  false "Shop domain (when no shop query)"
//
// @Success     200  {object}  domain.OrderIntake
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /orders/{id} [get]
func (h *Handlers) GetOrder(c *gin.Context) {
	id, valid := intakeID(c)
	if !valid {
		return
	}
	rec, err := h.intakes.Get(c.Request.Context(), shopDomain(c), id)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, rec)
}

// GetProduction godoc
// @ID          getProduction
// @Summary     Get the production record of an order
// @Description Recomputes the manufacturing instructions of a completed order from its intake record and the current catalog. Orders not yet completed return 409.
// @Tags        Orders
// @Produce     json
//
// @Param       id             path    string  true  "Intake ID (UUID)"  format(uuid)
// @Param       shop           query   string  false "Shop domain"       example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string  false "Shop domain (when no shop query)"
//
// @Success     200  {object}  domain.ProductionRecord
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     409  {object}  handlers.ErrorResponse "Production unavailable"
// @Failure     503  {object}  handlers.ErrorResponse "Catalog unavailable"
// @Router      /orders/{id}/production [get]
func (h *Handlers) GetProduction(c *gin.Context) {
	id, valid := intakeID(c)
	if !valid {
		return
	}
	rec, err := h.production.Get(c.Request.Context(), shopDomain(c), id)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, rec)
}

func intakeID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order id must be a UUID")
		return "", false
	}
	return id, true
}
