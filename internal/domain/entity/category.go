package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for custom categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for custom categories.
const DefaultCategoryIcon = "tag"

// Category is a label a goal is filed under. Default categories are shared by
// every user and are never stored; custom ones belong to a single user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	Icon      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCategories is the closed set of built-in goal categories.
var DefaultCategories = []*Category{
	{Name: "Health", Color: "#10B981", Icon: "heart", IsDefault: true},
	{Name: "Career", Color: "#3B82F6", Icon: "briefcase", IsDefault: true},
	{Name: "Finance", Color: "#F59E0B", Icon: "wallet", IsDefault: true},
	{Name: "Personal", Color: "#8B5CF6", Icon: "user", IsDefault: true},
	{Name: "Education", Color: "#EC4899", Icon: "book", IsDefault: true},
	{Name: "Relationships", Color: "#EF4444", Icon: "users", IsDefault: true},
}

// DefaultCategoryName returns the canonical spelling of a default category name.
func DefaultCategoryName(name string) (string, bool) {
	for _, c := range DefaultCategories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c.Name, true
		}
	}
	return "", false
}

// NewCategory builds a custom category. Color and icon are stored as given.
func NewCategory(userID uuid.UUID, name, color, icon string, now time.Time) *Category {
	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CategoryWithStats pairs a category with its goal usage.
type CategoryWithStats struct {
	Category  *Category
	GoalCount int64
}
