package billing

import (
	"context"
	"time"

	"github.com/costview/backend/internal/application/currency"
	domain "github.com/costview/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// BillingService aggregates whole-billing snapshots from external sources:
// it dispatches to the source adapter, converts currency per invoice, attaches
// tags and stamps provenance.
type BillingService struct {
	adapters  AdapterRegistry
	converter currency.Converter
	enricher  TagEnricher
	logger    *zap.Logger
}

// NewBillingService creates a billing aggregation service.
func NewBillingService(adapters AdapterRegistry, converter currency.Converter, enricher TagEnricher, logger *zap.Logger) *BillingService {
	return &BillingService{
		adapters:  adapters,
		converter: converter,
		enricher:  enricher,
		logger:    logger,
	}
}

// GetBilling fetches one source's billing snapshot for a date range,
// optionally converted to a target currency. A source with no data yields
// (nil, nil). Adapter, converter and enricher failures propagate unchanged so
// the boundary can map them by kind; the batch fails on the first error.
func (s *BillingService) GetBilling(ctx context.Context, source domain.Source, fromDate, toDate time.Time, requestedCurrency string) (*domain.Billing, error) {
	s.logger.Debug("fetching billing",
		zap.String("source", source.String()),
		zap.Time("from", fromDate),
		zap.Time("to", toDate),
		zap.String("currency", requestedCurrency),
	)

	adapter, err := resolveAdapter(s.adapters, source)
	if err != nil {
		return nil, err
	}

	snapshot, err := adapter.GetBilling(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	for _, invoice := range snapshot.Invoices {
		if err := decorateInvoice(ctx, s.converter, s.enricher, invoice, source, requestedCurrency); err != nil {
			return nil, err
		}
	}

	if target := domain.NormalizeCurrency(requestedCurrency); !domain.IsBlankCurrency(requestedCurrency) && target != snapshot.Currency {
		snapshot.OriginalCurrency = domain.NormalizeCurrencyPtr(&snapshot.Currency)
		snapshot.Currency = target
	}
	snapshot.Source = source

	return snapshot, nil
}
