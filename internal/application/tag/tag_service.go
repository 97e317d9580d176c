package tag

import (
	"context"
	"fmt"

	"github.com/costview/backend/internal/domain/shared"
	"github.com/costview/backend/internal/domain/tag"
	"go.uber.org/zap"
)

// TagService handles tag management operations.
type TagService struct {
	tags        tag.Repository
	invoiceTags tag.InvoiceTagRepository
	logger      *zap.Logger
}

// NewTagService creates a new TagService
func NewTagService(tags tag.Repository, invoiceTags tag.InvoiceTagRepository, logger *zap.Logger) *TagService {
	return &TagService{tags: tags, invoiceTags: invoiceTags, logger: logger}
}

// Create creates a new tag. Names are unique across all tags.
func (s *TagService) Create(ctx context.Context, name string, color *string) (*tag.Tag, error) {
	created, err := tag.NewTag(name, color)
	if err != nil {
		return nil, err
	}

	existing, err := s.tags.FindByName(ctx, created.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemAlreadyExist,
			fmt.Sprintf("tag with name %q already exists", created.Name))
	}

	if err := s.tags.Save(ctx, created); err != nil {
		return nil, err
	}
	s.logger.Info("tag created", zap.Uint("tag_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// GetByID retrieves a tag by id.
func (s *TagService) GetByID(ctx context.Context, id uint) (*tag.Tag, error) {
	found, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemNotFound, fmt.Sprintf("tag %d not found", id))
	}
	return found, nil
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]tag.Tag, error) {
	return s.tags.FindAll(ctx)
}

// Update changes a tag's name and color.
func (s *TagService) Update(ctx context.Context, id uint, name string, color *string) (*tag.Tag, error) {
	found, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.tags.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, shared.NewErrorWithDetail(shared.ErrKindItemAlreadyExist,
			fmt.Sprintf("tag with name %q already exists", name))
	}

	if err := found.Update(name, color); err != nil {
		return nil, err
	}
	if err := s.tags.Save(ctx, found); err != nil {
		return nil, err
	}
	return found, nil
}

// Delete removes a tag and every invoice assignment referencing it.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.invoiceTags.DeleteByTag(ctx, id); err != nil {
		return err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tag deleted", zap.Uint("tag_id", id))
	return nil
}
