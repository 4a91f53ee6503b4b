package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lifescope/backend/internal/application/adapter"
	"github.com/lifescope/backend/internal/domain/entity"
	domainerror "github.com/lifescope/backend/internal/domain/error"
)

const (
	MaxCategoryNameLength = 50
	MaxIconLength         = 50
)

// hexColor accepts #RGB and #RRGGBB.
var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}){1,2}$`)

func categoryError(code domainerror.CategoryErrorCode, sentinel error, message string) error {
	return domainerror.NewCategoryError(code, message, sentinel)
}

// cleanName trims raw and checks its length.
func cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", categoryError(domainerror.ErrCodeCategoryNameRequired, domainerror.ErrCategoryNameRequired,
			"category name is required")
	case utf8.RuneCountInString(name) > MaxCategoryNameLength:
		return "", categoryError(domainerror.ErrCodeCategoryNameTooLong, domainerror.ErrCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength))
	}
	return name, nil
}

// cleanColor allows an empty color, which callers resolve themselves.
func cleanColor(color string) (string, error) {
	if color != "" && !hexColor.MatchString(color) {
		return "", categoryError(domainerror.ErrCodeInvalidColorFormat, domainerror.ErrInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)")
	}
	return color, nil
}

func cleanIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return icon[:MaxIconLength]
	}
	return icon
}

func nameTaken() error {
	return categoryError(domainerror.ErrCodeCategoryNameExists, domainerror.ErrCategoryNameExists,
		"a category with this name already exists")
}

// writeError maps the repository's unique-name failure, which wins when two
// requests pass ensureNameAvailable at once.
func writeError(op string, err error) error {
	if errors.Is(err, domainerror.ErrCategoryNameExists) {
		return nameTaken()
	}
	return fmt.Errorf("failed to %s category: %w", op, err)
}

// ensureNameAvailable rejects a name that shadows a default category or
// another custom category of the user. self is skipped so a category can
// keep its own name.
func ensureNameAvailable(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, name string, self uuid.UUID) error {
	if _, isDefault := entity.DefaultCategoryName(name); isDefault {
		return nameTaken()
	}

	existing, err := repo.FindByName(ctx, userID, name)
	switch {
	case errors.Is(err, domainerror.ErrCategoryNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check category name: %w", err)
	case existing.ID != self:
		return nameTaken()
	}
	return nil
}

// findOwnedCategory loads a custom category that userID may change.
func findOwnedCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, categoryError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound, "category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != userID {
		return nil, categoryError(domainerror.ErrCodeNotAuthorizedCategory, domainerror.ErrNotAuthorizedToModifyCategory,
			"not authorized to modify this category")
	}
	return category, nil
}
