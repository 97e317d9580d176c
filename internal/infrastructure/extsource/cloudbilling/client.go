// Package cloudbilling is the adapter for the CloudBilling back-end. The
// remote API is simulated with a fixed dataset. CloudBilling identifies
// invoices by numeric reference and encodes amounts as strings, so parsing can
// fail and must surface as a source call error.
package cloudbilling

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds the CloudBilling endpoint settings.
type Config struct {
	URL          string
	AccessID     string
	APIKey       string
	Subscription string
}

// Client fetches invoice data from the CloudBilling back-end.
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a CloudBilling client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Wire shapes of the CloudBilling expense report. Currency lives at the batch
// level; each monthly entry carries a bill with a numeric reference and the
// amount as a string.
type payload struct {
	Expenses expenses `json:"expenses"`
}

type expenses struct {
	Currency string    `json:"currency"`
	Monthly  []monthly `json:"monthly"`
}

type monthly struct {
	IssueDate string `json:"issueDate"`
	Bill      bill   `json:"bill"`
}

type bill struct {
	Reference  int64  `json:"reference"`
	MoneyToPay string `json:"moneyToPay"`
}

// GetBilling returns the billing snapshot for the date range, both bounds
// inclusive. A snapshot with no matching entries still carries the batch
// currency.
func (c *Client) GetBilling(ctx context.Context, fromDate, toDate time.Time) (*billing.Billing, error) {
	data, err := c.call(ctx, fmt.Sprintf("%s/%s/%s", c.cfg.URL, fromDate.Format("2006-01-02"), toDate.Format("2006-01-02")), rangeFilter(fromDate, toDate))
	if err != nil {
		return nil, err
	}
	invoices, err := mapInvoices(&data.Expenses)
	if err != nil {
		return nil, err
	}
	return &billing.Billing{
		Currency: billing.NormalizeCurrency(data.Expenses.Currency),
		Invoices: invoices,
	}, nil
}

// GetInvoices returns the invoices in the date range, both bounds inclusive,
// each stamped with the batch-level currency.
func (c *Client) GetInvoices(ctx context.Context, fromDate, toDate time.Time) ([]*billing.Invoice, error) {
	data, err := c.call(ctx, fmt.Sprintf("%s/%s/%s", c.cfg.URL, fromDate.Format("2006-01-02"), toDate.Format("2006-01-02")), rangeFilter(fromDate, toDate))
	if err != nil {
		return nil, err
	}
	return mapInvoices(&data.Expenses)
}

// rangeFilter keeps entries whose issue date falls inside the range.
func rangeFilter(fromDate, toDate time.Time) func(*payload) {
	return func(p *payload) {
		kept := make([]monthly, 0, len(p.Expenses.Monthly))
		for _, entry := range p.Expenses.Monthly {
			date, err := time.Parse("2006-01-02", entry.IssueDate)
			if err != nil {
				continue
			}
			if !date.Before(fromDate) && !date.After(toDate) {
				kept = append(kept, entry)
			}
		}
		p.Expenses.Monthly = kept
	}
}

// GetInvoice returns the invoice with the given reference, or nil when the
// source has no such invoice. The id must be a numeric reference.
func (c *Client) GetInvoice(ctx context.Context, id string) (*billing.Invoice, error) {
	reference, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, fmt.Sprintf("invoice reference %q is not numeric", id))
	}

	data, err := c.call(ctx, fmt.Sprintf("%s/%d", c.cfg.URL, reference), func(p *payload) {
		kept := make([]monthly, 0, 1)
		for _, entry := range p.Expenses.Monthly {
			if entry.Bill.Reference == reference {
				kept = append(kept, entry)
			}
		}
		p.Expenses.Monthly = kept
	})
	if err != nil {
		return nil, err
	}

	invoices, err := mapInvoices(&data.Expenses)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}
	return invoices[0], nil
}

// call runs one simulated HTTP round trip over the example dataset. Faults
// inside the call surface as a source call error.
func (c *Client) call(ctx context.Context, url string, filter func(*payload)) (*payload, error) {
	c.logger.Debug("simulated cloudbilling call",
		zap.String("url", url),
		zap.String("access_id", c.cfg.AccessID),
		zap.String("subscription", c.cfg.Subscription),
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

// mapInvoices converts wire entries to domain invoices. The string amount is
// parsed here; a malformed amount is a source call error, not a crash. The
// batch currency is propagated down to each invoice.
func mapInvoices(report *expenses) ([]*billing.Invoice, error) {
	currency := billing.NormalizeCurrency(report.Currency)
	invoices := make([]*billing.Invoice, 0, len(report.Monthly))
	for _, entry := range report.Monthly {
		price, err := decimal.NewFromString(entry.Bill.MoneyToPay)
		if err != nil {
			return nil, shared.WrapError(shared.ErrKindExternalSourceCallError, err, fmt.Sprintf("invoice %d has malformed amount %q", entry.Bill.Reference, entry.Bill.MoneyToPay))
		}
		date, err := time.Parse("2006-01-02", entry.IssueDate)
		if err != nil {
			return nil, shared.WrapError(shared.ErrKindExternalSourceCallError, err, fmt.Sprintf("invoice %d", entry.Bill.Reference))
		}
		invoices = append(invoices, &billing.Invoice{
			ID:       strconv.FormatInt(entry.Bill.Reference, 10),
			Price:    price,
			Date:     date,
			Currency: currency,
		})
	}
	return invoices, nil
}
