package billing

import (
	"context"
	"time"

	domain "github.com/costview/backend/internal/domain/billing"
)

// SourceAdapter is the contract every external billing back-end adapter
// satisfies. Fetches filter by date range (both bounds inclusive) or by id;
// a missing single invoice is (nil, nil), not an error. Adapters stamp the
// batch-level currency down to each invoice; they never stamp the source.
type SourceAdapter interface {
	GetBilling(ctx context.Context, fromDate, toDate time.Time) (*domain.Billing, error)
	GetInvoices(ctx context.Context, fromDate, toDate time.Time) ([]*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// TagEnricher supplies tag metadata for an invoice id. A nil or empty result
// means the invoice has no tags.
type TagEnricher interface {
	GetTagsForInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceTag, error)
}

// AdapterRegistry maps source keys to their adapters. Dispatching through the
// registry keeps wrong-source requests from ever reaching a back-end.
type AdapterRegistry map[domain.Source]SourceAdapter
