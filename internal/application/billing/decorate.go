package billing

import (
	"context"

	"github.com/costview/backend/internal/application/currency"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
)

// resolveAdapter returns the adapter for a source key. Unsupported sources are
// rejected here, before any back-end call is attempted.
func resolveAdapter(registry AdapterRegistry, source domain.Source) (SourceAdapter, error) {
	adapter, ok := registry[source]
	if !ok {
		return nil, shared.NewErrorWithDetail(shared.ErrKindExternalSourceNotSupported, "source = "+source.String())
	}
	return adapter, nil
}

// decorateInvoice applies the per-invoice normalization pipeline: currency
// conversion against the invoice's own currency, tag enrichment, and source
// stamping. Conversion happens only when a non-blank target currency differs
// from the invoice currency; ExchangeRate and OriginalCurrency are set exactly
// when a conversion occurred. Tags are always attached, empty rather than nil.
func decorateInvoice(ctx context.Context, converter currency.Converter, enricher TagEnricher, invoice *domain.Invoice, source domain.Source, requestedCurrency string) error {
	target := domain.NormalizeCurrency(requestedCurrency)
	if !domain.IsBlankCurrency(requestedCurrency) && target != invoice.Currency {
		rate, err := converter.GetExchangeRate(ctx, invoice.Currency, target, invoice.Date)
		if err != nil {
			return err
		}
		invoice.Price = invoice.Price.Mul(rate).Round(2)
		invoice.ExchangeRate = &rate
		invoice.OriginalCurrency = domain.NormalizeCurrencyPtr(&invoice.Currency)
		invoice.Currency = target
	}

	tags, err := enricher.GetTagsForInvoice(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []domain.InvoiceTag{}
	}
	invoice.Tags = tags
	invoice.Source = source
	return nil
}
