// Package dto holds the JSON shapes of the HTTP API and their conversions
// from domain entities.
package dto

import (
	"time"

	"github.com/lifescope/backend/internal/domain/entity"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty" binding:"max=50"`
}

// UpdateCategoryRequest is a PATCH body. Absent fields are kept.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty" binding:"omitempty,max=50"`
}

// CategoryResponse describes one category. Built-in categories carry no
// ID or timestamps.
type CategoryResponse struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	IsDefault bool       `json:"is_default"`
	GoalCount int64      `json:"goal_count"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func ToCategoryResponse(c *entity.Category) CategoryResponse {
	if c.IsDefault {
		return CategoryResponse{Name: c.Name, Color: c.Color, Icon: c.Icon, IsDefault: true}
	}
	created, updated := c.CreatedAt, c.UpdatedAt
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

func ToCategoryListResponse(items []*entity.CategoryWithStats) CategoryListResponse {
	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(items))}
	for _, item := range items {
		c := ToCategoryResponse(item.Category)
		c.GoalCount = item.GoalCount
		resp.Categories = append(resp.Categories, c)
	}
	return resp
}
