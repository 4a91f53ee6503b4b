package error

import "errors"

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameExists   = errors.New("category name already exists")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
	ErrInvalidColorFormat   = errors.New("invalid color format")

	// ErrNotAuthorizedToModifyCategory means the category belongs to another user.
	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")

	// ErrCategoryInUse blocks deleting a category that still files goals.
	ErrCategoryInUse = errors.New("category is used by goals")
)

// CategoryErrorCode values are CAT-01YYYY. All category failures share the
// 01 group.
type CategoryErrorCode string

const (
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
	ErrCodeCategoryInUse         CategoryErrorCode = "CAT-010008"
)

// CategoryError reports a rejected category write or lookup.
type CategoryError = CodedError[CategoryErrorCode]

func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return newCoded(code, message, err)
}
