package handler

import (
	"strconv"

	apptag "github.com/costview/backend/internal/application/tag"
	"github.com/gin-gonic/gin"
)

// InvoiceTagHandler serves invoice-tag assignment endpoints.
type InvoiceTagHandler struct {
	BaseHandler
	assignments *apptag.InvoiceTagService
}

// NewInvoiceTagHandler creates a new InvoiceTagHandler
func NewInvoiceTagHandler(assignments *apptag.InvoiceTagService) *InvoiceTagHandler {
	return &InvoiceTagHandler{assignments: assignments}
}

// RegisterRoutes registers invoice-tag routes
func (h *InvoiceTagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/invoice-tags")
	group.GET("/:invoiceId", h.ListForInvoice)
	group.POST("/:invoiceId/:tagId", h.Assign)
	group.DELETE("/:invoiceId/:tagId", h.Remove)
}

func parseAssignmentParams(c *gin.Context) (string, uint, bool) {
	invoiceID := c.Param("invoiceId")
	tagID, err := strconv.ParseUint(c.Param("tagId"), 10, 32)
	if err != nil {
		return "", 0, false
	}
	return invoiceID, uint(tagID), true
}

// ListForInvoice returns an invoice's tags with denormalized names and colors.
func (h *InvoiceTagHandler) ListForInvoice(c *gin.Context) {
	tags, err := h.assignments.GetTagsForInvoice(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	responses := make([]InvoiceTagResponse, 0, len(tags))
	for _, entry := range tags {
		responses = append(responses, InvoiceTagResponse{
			TagID: int(entry.TagID),
			Name:  entry.TagName,
			Color: entry.TagColor,
		})
	}
	h.Success(c, responses)
}

// Assign attaches a tag to an invoice.
func (h *InvoiceTagHandler) Assign(c *gin.Context) {
	invoiceID, tagID, ok := parseAssignmentParams(c)
	if !ok {
		h.BadRequest(c, "tagId must be a positive integer")
		return
	}
	if _, err := h.assignments.Assign(c.Request.Context(), invoiceID, tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"invoice_id": invoiceID, "tag_id": tagID})
}

// Remove detaches a tag from an invoice.
func (h *InvoiceTagHandler) Remove(c *gin.Context) {
	invoiceID, tagID, ok := parseAssignmentParams(c)
	if !ok {
		h.BadRequest(c, "tagId must be a positive integer")
		return
	}
	if err := h.assignments.Remove(c.Request.Context(), invoiceID, tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
