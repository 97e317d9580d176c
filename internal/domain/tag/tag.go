package tag

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/costview/backend/internal/domain/shared"
)

// MaxTagNameLength bounds tag names the way the invoice views display them.
const MaxTagNameLength = 50

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// Tag labels invoices for cost breakdowns. The color is optional and, when
// present, a CSS hex color.
type Tag struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Color     *string `gorm:"type:varchar(7)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a tag, validating the name and optional color.
func NewTag(name string, color *string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}
	return &Tag{Name: name, Color: color}, nil
}

// Update replaces the tag's name and color after validation.
func (t *Tag) Update(name string, color *string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateColor(color); err != nil {
		return err
	}
	t.Name = name
	t.Color = color
	t.UpdatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidRequest, "tag name must not be empty")
	}
	if len(name) > MaxTagNameLength {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			fmt.Sprintf("tag name must not exceed %d characters", MaxTagNameLength))
	}
	return nil
}

func validateColor(color *string) error {
	if color == nil {
		return nil
	}
	if !colorPattern.MatchString(*color) {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidRequest,
			fmt.Sprintf("color %q is not a valid hex color", *color))
	}
	return nil
}
