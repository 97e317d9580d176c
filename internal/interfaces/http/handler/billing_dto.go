package handler

import (
	"time"

	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// BillingQuery holds the common query parameters of billing endpoints.
type BillingQuery struct {
	From     string `form:"from" binding:"required"`
	To       string `form:"to" binding:"required"`
	Currency string `form:"currency"`
}

// Range parses the from/to dates. The bounds are inclusive.
func (q BillingQuery) Range() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			"from must be a date in YYYY-MM-DD form")
	}
	to, err := time.Parse(dateLayout, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			"to must be a date in YYYY-MM-DD form")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			"to must not be before from")
	}
	return from, to, nil
}

// InvoiceTagResponse is the wire form of a tag attached to an invoice.
type InvoiceTagResponse struct {
	TagID int     `json:"tag_id"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// InvoiceResponse is the wire form of an invoice.
type InvoiceResponse struct {
	ID               string               `json:"id"`
	Price            decimal.Decimal      `json:"price"`
	ExchangeRate     *decimal.Decimal     `json:"exchange_rate,omitempty"`
	Date             string               `json:"date"`
	Currency         string               `json:"currency"`
	OriginalCurrency *string              `json:"original_currency,omitempty"`
	Source           string               `json:"source"`
	Tags             []InvoiceTagResponse `json:"tags"`
}

// BillingResponse is the wire form of a billing snapshot.
type BillingResponse struct {
	Currency         string            `json:"currency"`
	OriginalCurrency *string           `json:"original_currency,omitempty"`
	Source           string            `json:"source"`
	Invoices         []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse maps a domain invoice to its wire form.
func ToInvoiceResponse(invoice *domain.Invoice) InvoiceResponse {
	tags := make([]InvoiceTagResponse, 0, len(invoice.Tags))
	for _, entry := range invoice.Tags {
		tags = append(tags, InvoiceTagResponse{
			TagID: int(entry.TagID),
			Name:  entry.TagName,
			Color: entry.TagColor,
		})
	}
	return InvoiceResponse{
		ID:               invoice.ID,
		Price:            invoice.Price,
		ExchangeRate:     invoice.ExchangeRate,
		Date:             invoice.Date.Format(dateLayout),
		Currency:         invoice.Currency,
		OriginalCurrency: invoice.OriginalCurrency,
		Source:           string(invoice.Source),
		Tags:             tags,
	}
}

// ToBillingResponse maps a billing snapshot to its wire form.
func ToBillingResponse(snapshot *domain.Billing) BillingResponse {
	invoices := make([]InvoiceResponse, 0, len(snapshot.Invoices))
	for _, invoice := range snapshot.Invoices {
		invoices = append(invoices, ToInvoiceResponse(invoice))
	}
	return BillingResponse{
		Currency:         snapshot.Currency,
		OriginalCurrency: snapshot.OriginalCurrency,
		Source:           string(snapshot.Source),
		Invoices:         invoices,
	}
}
