package tag

import (
	"strings"
	"time"

	"github.com/costview/backend/internal/domain/shared"
)

// InvoiceTag assigns a tag to an external invoice. Invoices live in the
// external sources, so only the invoice id is stored here; one row per
// (invoice, tag) pair.
type InvoiceTag struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	InvoiceID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_invoice_tag,priority:1"`
	TagID     uint   `gorm:"not null;uniqueIndex:idx_invoice_tag,priority:2;index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (InvoiceTag) TableName() string {
	return "invoice_tags"
}

// NewInvoiceTag creates an assignment of a tag to an invoice.
func NewInvoiceTag(invoiceID string, tagID uint) (*InvoiceTag, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "invoice id must not be empty")
	}
	if tagID == 0 {
		return nil, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "tag id must not be zero")
	}
	return &InvoiceTag{InvoiceID: invoiceID, TagID: tagID}, nil
}
