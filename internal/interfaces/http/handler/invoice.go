package handler

import (
	appbilling "github.com/costview/backend/internal/application/billing"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves individual invoices and invoice lists.
type InvoiceHandler struct {
	BaseHandler
	invoices *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices/:source", h.GetInvoices)
	rg.GET("/invoices/:source/:id", h.GetInvoice)
}

// GetInvoices returns the invoices of one source for a date range.
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
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

	invoices, err := h.invoices.GetInvoices(c.Request.Context(), source, from, to, query.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		responses = append(responses, ToInvoiceResponse(invoice))
	}
	h.Success(c, responses)
}

// GetInvoice returns a single invoice by source-specific id.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	source, err := domain.ParseSource(c.Param("source"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), source, c.Param("id"), c.Query("currency"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ToInvoiceResponse(invoice))
}
