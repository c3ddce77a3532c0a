// Customization HTTP handlers.
//
//   - GET /products/{productId}/customization
//   - PUT /products/{productId}/customization
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PutCustomizationRequest is the JSON payload for toggling a product.
type PutCustomizationRequest struct {
	// Enabled turns the widget on or off for the product.
	Enabled *bool `json:"enabled" binding:"required" example:"true"`
	// Settings is stored verbatim and returned to the widget.
	Settings map[string]any `json:"settings"`
}

// GetCustomization godoc
// @ID          getCustomization
// @Summary     Read a product toggle
// @Description Returns whether the widget is enabled for a product. Products never configured read as disabled.
// @Tags        Customizations
// @Produce     json
//
// @Param       productId      path    string  true  "Product ID"   example(8012345678)
// @Param       shop           query   string  false "Shop domain"  example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string  false "Shop domain (when no shop query)"
//
// @Success     200  {object}  domain.ProductCustomization
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /products/{productId}/customization [get]
func (h *Handlers) GetCustomization(c *gin.Context) {
	pc, err := h.toggles.Get(c.Request.Context(), shopDomain(c), c.Param("productId"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, pc)
}

// PutCustomization godoc
// @ID          putCustomization
// @Summary     Write a product toggle
// @Description Upserts the widget toggle and settings of a product.
// @Tags        Customizations
// @Accept      json
// @Produce     json
//
// @Param       productId      path    string                            true  "Product ID"   example(8012345678)
// @Param       shop           query   string                            false "Shop domain"  example(demo.myshopify.com)
// @Param       X-Shop-Domain  header  string                            false "Shop domain (when no shop query)"
// @Param       body           body    handlers.PutCustomizationRequest  true  "Toggle"
//
// @Success     200  {object}  domain.ProductCustomization
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /products/{productId}/customization [put]
func (h *Handlers) PutCustomization(c *gin.Context) {
	var req PutCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "enabled required")
		return
	}

	pc, err := h.toggles.Put(c.Request.Context(), shopDomain(c), c.Param("productId"), *req.Enabled, req.Settings)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, pc)
}
