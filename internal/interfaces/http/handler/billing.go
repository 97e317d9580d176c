package handler

import (
	appbilling "github.com/costview/backend/internal/application/billing"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
)

// BillingHandler serves aggregated billing snapshots.
type BillingHandler struct {
	BaseHandler
	billing *appbilling.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billing *appbilling.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/billing/:source", h.GetBilling)
}

// GetBilling returns the billing snapshot of one source for a date range,
// optionally converted to a requested currency.
func (h *BillingHandler) GetBilling(c *gin.Context) {
	source, err := domain.ParseSource(c.Param("source"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var query BillingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "from and to query parameters are required")
		return
	}
	from, to, err := query.Range()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	snapshot, err := h.billing.GetBilling(c.Request.Context(), source, from, to, query.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if snapshot == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, ToBillingResponse(snapshot))
}
