package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/domain/entity"
)

// CategoryModel is a custom goal category. NameKey is the lowercased name so
// that a user cannot own "Hobbies" and "hobbies" at once.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goal_categories_user_name,priority:1"`
	Name      string    `gorm:"type:varchar(50);not null"`
	NameKey   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_goal_categories_user_name,priority:2"`
	Color     string    `gorm:"type:varchar(7);not null"`
	Icon      string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CategoryModel) TableName() string {
	return "goal_categories"
}

// CategoryNameKey folds a category name the way the unique index compares it.
func CategoryNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func CategoryFromEntity(c *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		NameKey:   CategoryNameKey(c.Name),
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
