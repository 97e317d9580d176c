package tag

import (
	"context"
	"fmt"

	billingdomain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/shared"
	"github.com/costview/backend/internal/domain/tag"
	"go.uber.org/zap"
)

// InvoiceTagService manages tag assignments on external invoices and serves
// as the tag lookup used when invoices are assembled for clients.
type InvoiceTagService struct {
	tags        tag.Repository
	invoiceTags tag.InvoiceTagRepository
	logger      *zap.Logger
}

// NewInvoiceTagService creates a new InvoiceTagService
func NewInvoiceTagService(tags tag.Repository, invoiceTags tag.InvoiceTagRepository, logger *zap.Logger) *InvoiceTagService {
	return &InvoiceTagService{tags: tags, invoiceTags: invoiceTags, logger: logger}
}

// Assign attaches a tag to an invoice. The tag must exist and the pair must
// not already be assigned.
func (s *InvoiceTagService) Assign(ctx context.Context, invoiceID string, tagID uint) (*tag.InvoiceTag, error) {
	assignment, err := tag.NewInvoiceTag(invoiceID, tagID)
	if err != nil {
		return nil, err
	}

	existing, err := s.tags.FindByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemNotFound, fmt.Sprintf("tag %d not found", tagID))
	}

	duplicate, err := s.invoiceTags.Find(ctx, assignment.InvoiceID, tagID)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemAlreadyExist,
			fmt.Sprintf("invoice %s already has tag %d", assignment.InvoiceID, tagID))
	}

	if err := s.invoiceTags.Save(ctx, assignment); err != nil {
		return nil, err
	}
	s.logger.Info("tag assigned", zap.String("invoice_id", assignment.InvoiceID), zap.Uint("tag_id", tagID))
	return assignment, nil
}

// Remove detaches a tag from an invoice.
func (s *InvoiceTagService) Remove(ctx context.Context, invoiceID string, tagID uint) error {
	existing, err := s.invoiceTags.Find(ctx, invoiceID, tagID)
	if err != nil {
		return err
	}
	if existing == nil {
		return shared.NewErrorWithDetail(shared.ErrKindItemNotFound,
			fmt.Sprintf("invoice %s has no tag %d", invoiceID, tagID))
	}
	return s.invoiceTags.Delete(ctx, invoiceID, tagID)
}

// ListForInvoice returns the assignments for an invoice.
func (s *InvoiceTagService) ListForInvoice(ctx context.Context, invoiceID string) ([]tag.InvoiceTag, error) {
	return s.invoiceTags.FindByInvoice(ctx, invoiceID)
}

// GetTagsForInvoice returns the invoice's tags with their current name and
// color denormalized onto each entry. Assignments whose tag has since been
// removed are skipped.
func (s *InvoiceTagService) GetTagsForInvoice(ctx context.Context, invoiceID string) ([]billingdomain.InvoiceTag, error) {
	assignments, err := s.invoiceTags.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		ids = append(ids, assignment.TagID)
	}
	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]tag.Tag, len(tags))
	for _, entry := range tags {
		byID[entry.ID] = entry
	}

	result := make([]billingdomain.InvoiceTag, 0, len(assignments))
	for _, assignment := range assignments {
		entry, ok := byID[assignment.TagID]
		if !ok {
			continue
		}
		result = append(result, billingdomain.InvoiceTag{
			InvoiceID: assignment.InvoiceID,
			TagID:     entry.ID,
			TagName:   entry.Name,
			TagColor:  entry.Color,
		})
	}
	return result, nil
}
