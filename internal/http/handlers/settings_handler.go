// Settings HTTP handlers.
//
// This file exposes the shop catalog and pricing endpoints:
//   - GET  /settings   (resolve, creating the default catalog on first read)
//   - PUT  /settings   (replace the lists present in the body)
//   - POST /quote      (price a customization request)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-personalizer-backend/internal/domain"
)

//
// DTOs
//

// QuoteRequest is the JSON payload for pricing a customization.
type QuoteRequest struct {
	// Properties are the line item properties the widget would submit.
	Properties domain.Properties `json:"properties" swaggertype:"object,string" example:"Player Name:SMITH,Placement:Chest"`
}

// GetSettings godoc
// @ID          getSettings
// @Summary     Resolve the shop catalog
// @Description Returns the shop's text options, placements and fonts. A shop without a catalog gets the default one, stored on first read.
// @Tags        Settings
// @Produce     json
//
// @Param       shop           query   string  false "Shop domain"                       example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string  false "Shop domain (when no shop query)"
//
// @Success     200  {object}  domain.ShopCatalog
// @Failure     400  {object}  handlers.ErrorResponse  "Shop required"
// @Failure     503  {object}  handlers.ErrorResponse  "Catalog unavailable"
// @Router      /settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	cat, err := h.catalogs.Resolve(c.Request.Context(), shopDomain(c))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, cat)
}

// PutSettings godoc
// @ID          putSettings
// @Summary     Replace catalog lists
// @Description Replaces each list present in the body; absent lists keep their stored value.
// @Tags        Settings
// @Accept      json
// @Produce     json
//
// @Param       shop           query   string               false "Shop domain"  example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string               false "Shop domain (when no shop query)"
// @Param       body           body    domain.CatalogPatch  true  "Catalog lists"
//
// @Success     200  {object}  domain.ShopCatalog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     503  {object}  handlers.ErrorResponse  "Catalog unavailable"
// @Router      /settings [put]
func (h *Handlers) PutSettings(c *gin.Context) {
	var patch domain.CatalogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	cat, err := h.catalogs.Replace(c.Request.Context(), shopDomain(c), patch)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, cat)
}

// Quote godoc
// @ID          quote
// @Summary     Price a customization
// @Description Prices a properties bag against the shop catalog using the same matching rules as order compilation. Requests that resolve to no placement quote zero.
// @Tags        Settings
// @Accept      json
// @Produce     json
//
// @Param       shop           query   string                false "Shop domain"  example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string                false "Shop domain (when no shop query)"
// @Param       body           body    handlers.QuoteRequest true  "Properties to price"
//
// @Success     200  {object}  personalize.Quote
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     503  {object}  handlers.ErrorResponse  "Catalog unavailable"
// @Router      /quote [post]
func (h *Handlers) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	q, err := h.catalogs.Quote(c.Request.Context(), shopDomain(c), req.Properties)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, q)
}
