package tag

import "context"

// Repository defines the interface for tag persistence. Lookups return
// (nil, nil) when no row matches; callers decide whether absence is an error.
type Repository interface {
	// FindByID finds a tag by its id
	FindByID(ctx context.Context, id uint) (*Tag, error)

	// FindByName finds a tag by its exact name
	FindByName(ctx context.Context, name string) (*Tag, error)

	// FindAll returns all tags ordered by name
	FindAll(ctx context.Context) ([]Tag, error)

	// FindByIDs returns the tags with the given ids
	FindByIDs(ctx context.Context, ids []uint) ([]Tag, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag
	Delete(ctx context.Context, id uint) error
}

// InvoiceTagRepository defines the interface for invoice-tag assignments.
type InvoiceTagRepository interface {
	// FindByInvoice returns all assignments for an invoice
	FindByInvoice(ctx context.Context, invoiceID string) ([]InvoiceTag, error)

	// Find finds a specific assignment
	Find(ctx context.Context, invoiceID string, tagID uint) (*InvoiceTag, error)

	// Save creates an assignment
	Save(ctx context.Context, assignment *InvoiceTag) error

	// Delete removes an assignment
	Delete(ctx context.Context, invoiceID string, tagID uint) error

	// DeleteByTag removes all assignments of a tag
	DeleteByTag(ctx context.Context, tagID uint) error
}
