// Package suite is the adapter for the Suite billing back-end. The remote API
// is simulated with a fixed dataset; the call contract (date-range or id
// lookup, can fail, returns a billing payload) matches a real integration.
package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds the Suite endpoint settings.
type Config struct {
	URL      string
	Username string
	Password string
}

// Client fetches billing data from the Suite back-end.
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a Suite client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Wire shapes of the Suite billing response. Suite encodes currency at the
// batch level.
type payload struct {
	FinancialInfo *financialInfo `json:"financialInfo"`
}

type financialInfo struct {
	Currency            string               `json:"currency"`
	InvoiceDescriptions []invoiceDescription `json:"invoiceDescriptions"`
}

type invoiceDescription struct {
	ID          string  `json:"id"`
	Cost        float64 `json:"cost"`
	InvoiceDate string  `json:"invoiceDate"`
}

// GetBilling returns the billing snapshot for the date range, both bounds
// inclusive. A nil snapshot means the source had no data.
func (c *Client) GetBilling(ctx context.Context, fromDate, toDate time.Time) (*billing.Billing, error) {
	data, err := c.call(ctx, fmt.Sprintf("%s/%s/%s", c.cfg.URL, fromDate.Format("2006-01-02"), toDate.Format("2006-01-02")), func(p *payload) {
		filterByRange(p, fromDate, toDate)
	})
	if err != nil {
		return nil, err
	}
	if data.FinancialInfo == nil {
		return nil, nil
	}

	invoices, err := mapInvoices(data.FinancialInfo)
	if err != nil {
		return nil, err
	}
	return &billing.Billing{
		Currency: billing.NormalizeCurrency(data.FinancialInfo.Currency),
		Invoices: invoices,
	}, nil
}

// GetInvoices returns the invoices in the date range as a flat list, each
// stamped with the batch-level currency.
func (c *Client) GetInvoices(ctx context.Context, fromDate, toDate time.Time) ([]*billing.Invoice, error) {
	snapshot, err := c.GetBilling(ctx, fromDate, toDate)
	if err != nil || snapshot == nil {
		return nil, err
	}
	return snapshot.Invoices, nil
}

// GetInvoice returns the invoice with the given id, or nil when the source
// has no such invoice.
func (c *Client) GetInvoice(ctx context.Context, id string) (*billing.Invoice, error) {
	data, err := c.call(ctx, fmt.Sprintf("%s/%s", c.cfg.URL, id), func(p *payload) {
		filterByID(p, id)
	})
	if err != nil {
		return nil, err
	}
	if data.FinancialInfo == nil {
		return nil, nil
	}

	invoices, err := mapInvoices(data.FinancialInfo)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}
	return invoices[0], nil
}

// call runs one simulated HTTP round trip: the example response is filtered,
// serialized and parsed back, so the adapter exercises the same decode path a
// real integration would. Any fault inside the call surfaces as a source call
// error, never as an unrelated runtime fault.
func (c *Client) call(ctx context.Context, url string, filter func(*payload)) (*payload, error) {
	c.logger.Debug("simulated suite call",
		zap.String("url", url),
		zap.String("user", c.cfg.Username),
	)

	response := exampleResponse()
	filter(response)

	body, err := json.Marshal(response)
	if err != nil {
		return nil, shared.WrapError(shared.ErrKindExternalSourceCallError, err, "")
	}

	var data payload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, shared.WrapError(shared.ErrKindExternalSourceCallError, err, "")
	}
	return &data, nil
}

func filterByRange(p *payload, fromDate, toDate time.Time) {
	if p.FinancialInfo == nil {
		return
	}
	kept := make([]invoiceDescription, 0, len(p.FinancialInfo.InvoiceDescriptions))
	for _, desc := range p.FinancialInfo.InvoiceDescriptions {
		date, err := time.Parse("2006-01-02", desc.InvoiceDate)
		if err != nil {
			continue
		}
		if !date.Before(fromDate) && !date.After(toDate) {
			kept = append(kept, desc)
		}
	}
	p.FinancialInfo.InvoiceDescriptions = kept
}

func filterByID(p *payload, id string) {
	if p.FinancialInfo == nil {
		return
	}
	kept := make([]invoiceDescription, 0, 1)
	for _, desc := range p.FinancialInfo.InvoiceDescriptions {
		if desc.ID == id {
			kept = append(kept, desc)
		}
	}
	p.FinancialInfo.InvoiceDescriptions = kept
}

// mapInvoices converts wire invoices to domain invoices, propagating the
// batch currency down to invoice level so the aggregator's per-invoice logic
// stays uniform.
func mapInvoices(info *financialInfo) ([]*billing.Invoice, error) {
	currency := billing.NormalizeCurrency(info.Currency)
	invoices := make([]*billing.Invoice, 0, len(info.InvoiceDescriptions))
	for _, desc := range info.InvoiceDescriptions {
		date, err := time.Parse("2006-01-02", desc.InvoiceDate)
		if err != nil {
			return nil, shared.WrapError(shared.ErrKindExternalSourceCallError, err, "invoice "+desc.ID)
		}
		invoices = append(invoices, &billing.Invoice{
			ID:       desc.ID,
			Price:    decimal.NewFromFloat(desc.Cost),
			Date:     date,
			Currency: currency,
		})
	}
	return invoices, nil
}
