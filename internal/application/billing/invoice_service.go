package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/costview/backend/internal/application/currency"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceService aggregates invoice lists and single invoices from external
// sources, applying the same per-invoice pipeline as the billing snapshot
// path: conversion, tag enrichment, source stamping.
type InvoiceService struct {
	adapters  AdapterRegistry
	converter currency.Converter
	enricher  TagEnricher
	logger    *zap.Logger
}

// NewInvoiceService creates an invoice aggregation service.
func NewInvoiceService(adapters AdapterRegistry, converter currency.Converter, enricher TagEnricher, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		adapters:  adapters,
		converter: converter,
		enricher:  enricher,
		logger:    logger,
	}
}

// GetInvoices fetches one source's invoices for a date range, optionally
// converted to a target currency. Order follows the adapter's return order.
// A source with no data yields (nil, nil); the batch fails on the first
// per-invoice error.
func (s *InvoiceService) GetInvoices(ctx context.Context, source domain.Source, fromDate, toDate time.Time, requestedCurrency string) ([]*domain.Invoice, error) {
	s.logger.Debug("fetching invoices",
		zap.String("source", source.String()),
		zap.Time("from", fromDate),
		zap.Time("to", toDate),
		zap.String("currency", requestedCurrency),
	)

	adapter, err := resolveAdapter(s.adapters, source)
	if err != nil {
		return nil, err
	}

	invoices, err := adapter.GetInvoices(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		return nil, nil
	}

	for _, invoice := range invoices {
		if err := decorateInvoice(ctx, s.converter, s.enricher, invoice, source, requestedCurrency); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// GetInvoice fetches a single invoice by source-specific id or reference. An
// invoice the adapter reports as absent fails with an item-not-found error
// whose detail names both the source and the requested id.
func (s *InvoiceService) GetInvoice(ctx context.Context, source domain.Source, id string, requestedCurrency string) (*domain.Invoice, error) {
	s.logger.Debug("fetching invoice",
		zap.String("source", source.String()),
		zap.String("id", id),
		zap.String("currency", requestedCurrency),
	)

	adapter, err := resolveAdapter(s.adapters, source)
	if err != nil {
		return nil, err
	}

	invoice, err := adapter.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemNotFound, fmt.Sprintf("%s data for %s not found", source, id))
	}

	if err := decorateInvoice(ctx, s.converter, s.enricher, invoice, source, requestedCurrency); err != nil {
		return nil, err
	}
	return invoice, nil
}
