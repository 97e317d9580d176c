package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Billing is one source's billing response for a date range. It is a
// response-shaped value: adapters build it, the aggregator decorates it, and
// it is discarded after serialization. Currency codes are stored canonical
// (upper-case) so reads never normalize.
type Billing struct {
	Currency         string
	OriginalCurrency *string
	Source           Source
	Invoices         []*Invoice
}

// Invoice is a single normalized invoice. ID format is source-specific:
// UUID-like for Suite, a numeric reference for CloudBilling.
type Invoice struct {
	ID               string
	Price            decimal.Decimal
	ExchangeRate     *decimal.Decimal
	Date             time.Time
	Currency         string
	OriginalCurrency *string
	Source           Source
	Tags             []InvoiceTag
}

// InvoiceTag is tag metadata attached to an invoice. TagName and TagColor are
// denormalized display fields supplied by the tag enricher.
type InvoiceTag struct {
	InvoiceID string
	TagID     uint
	TagName   string
	TagColor  *string
}

// NormalizeCurrency canonicalizes a currency code: trimmed and upper-cased.
// Normalization happens where values are set, never on read.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCurrencyPtr canonicalizes an optional currency code. Nil stays nil.
func NormalizeCurrencyPtr(code *string) *string {
	if code == nil {
		return nil
	}
	normalized := NormalizeCurrency(*code)
	return &normalized
}

// IsBlankCurrency reports whether a requested currency means "no conversion
// requested": empty or whitespace-only.
func IsBlankCurrency(code string) bool {
	return strings.TrimSpace(code) == ""
}
