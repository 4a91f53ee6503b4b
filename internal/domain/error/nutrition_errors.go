package error

import "errors"

// Nutrition domain errors.
var (
	// ErrNutritionEntryNotFound is returned when an entry does not exist or belongs to another user.
	ErrNutritionEntryNotFound = errors.New("nutrition entry not found")

	// ErrNutritionNameRequired is returned when the entry name is empty.
	ErrNutritionNameRequired = errors.New("nutrition entry name is required")

	// ErrInvalidMealType is returned when the meal type is not accepted.
	ErrInvalidMealType = errors.New("invalid meal type")

	// ErrNegativeMacros is returned when calories or a macronutrient is negative.
	ErrNegativeMacros = errors.New("calories and macros must not be negative")

	// ErrInvalidNutritionDate is returned when a day or consumed-at value cannot be parsed.
	ErrInvalidNutritionDate = errors.New("invalid nutrition date")
)

// NutritionErrorCode defines error codes for nutrition errors.
// Format: NUT-XXYYYY where XX is category and YYYY is specific error.
type NutritionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNutritionNameRequired NutritionErrorCode = "NUT-010001"
	ErrCodeInvalidMealType       NutritionErrorCode = "NUT-010002"
	ErrCodeNegativeMacros        NutritionErrorCode = "NUT-010003"
	ErrCodeInvalidNutritionDate  NutritionErrorCode = "NUT-010004"
	ErrCodeNutritionNameTooLong  NutritionErrorCode = "NUT-010005"

	// Not found errors (02XXXX)
	ErrCodeNutritionEntryNotFound NutritionErrorCode = "NUT-020001"
)

// NutritionError reports a failed meal or water log operation.
type NutritionError = CodedError[NutritionErrorCode]

func NewNutritionError(code NutritionErrorCode, message string, err error) *NutritionError {
	return newCoded(code, message, err)
}
