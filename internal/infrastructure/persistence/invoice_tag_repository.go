package persistence

import (
	"context"
	"errors"

	"github.com/costview/backend/internal/domain/tag"
	"gorm.io/gorm"
)

// GormInvoiceTagRepository implements tag.InvoiceTagRepository using GORM
type GormInvoiceTagRepository struct {
	db *gorm.DB
}

// NewGormInvoiceTagRepository creates a new GormInvoiceTagRepository
func NewGormInvoiceTagRepository(db *gorm.DB) *GormInvoiceTagRepository {
	return &GormInvoiceTagRepository{db: db}
}

// FindByInvoice returns all assignments for an invoice
func (r *GormInvoiceTagRepository) FindByInvoice(ctx context.Context, invoiceID string) ([]tag.InvoiceTag, error) {
	var records []tag.InvoiceTag
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("tag_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Find finds a specific assignment
func (r *GormInvoiceTagRepository) Find(ctx context.Context, invoiceID string, tagID uint) (*tag.InvoiceTag, error) {
	var record tag.InvoiceTag
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ? AND tag_id = ?", invoiceID, tagID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Save creates an assignment
func (r *GormInvoiceTagRepository) Save(ctx context.Context, assignment *tag.InvoiceTag) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// Delete removes an assignment
func (r *GormInvoiceTagRepository) Delete(ctx context.Context, invoiceID string, tagID uint) error {
	return r.db.WithContext(ctx).
		Where("invoice_id = ? AND tag_id = ?", invoiceID, tagID).
		Delete(&tag.InvoiceTag{}).Error
}

// DeleteByTag removes all assignments of a tag
func (r *GormInvoiceTagRepository) DeleteByTag(ctx context.Context, tagID uint) error {
	return r.db.WithContext(ctx).
		Where("tag_id = ?", tagID).
		Delete(&tag.InvoiceTag{}).Error
}
