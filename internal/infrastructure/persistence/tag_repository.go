package persistence

import (
	"context"
	"errors"

	"github.com/costview/backend/internal/domain/tag"
	"gorm.io/gorm"
)

// GormTagRepository implements tag.Repository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its id
func (r *GormTagRepository) FindByID(ctx context.Context, id uint) (*tag.Tag, error) {
	var record tag.Tag
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByName finds a tag by its exact name
func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	var record tag.Tag
	if err := r.db.WithContext(ctx).First(&record, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindAll returns all tags ordered by name
func (r *GormTagRepository) FindAll(ctx context.Context) ([]tag.Tag, error) {
	var records []tag.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByIDs returns the tags with the given ids
func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []uint) ([]tag.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []tag.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, record *tag.Tag) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete deletes a tag
func (r *GormTagRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&tag.Tag{}, "id = ?", id).Error
}
