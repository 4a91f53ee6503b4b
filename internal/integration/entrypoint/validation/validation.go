// Package validation registers the domain-aware binding tags used by request DTOs.
package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lifescope/backend/internal/domain/entity"
	"github.com/lifescope/backend/internal/domain/valueobject"
)

const (
	// TagActivityFrequency accepts Daily, Weekly, Monthly or Once in any case.
	TagActivityFrequency = "activity_frequency"
	// TagGoalPriority accepts High, Medium or Low.
	TagGoalPriority = "goal_priority"
	// TagGoalStatus accepts Not Started, In Progress or Completed.
	TagGoalStatus = "goal_status"
	// TagTimezone accepts IANA zone names.
	TagTimezone = "timezone"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags on gin's default validator. It is safe to
// call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagActivityFrequency: validateFrequency,
		TagGoalPriority:      validatePriority,
		TagGoalStatus:        validateStatus,
		TagTimezone:          validateTimezone,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// FailedTag returns the first failing tag of a binding error, or "".
func FailedTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

// FailedField returns the JSON-facing field name of the first failure, or "".
func FailedField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

func validateFrequency(fl validator.FieldLevel) bool {
	_, ok := valueobject.ParseFrequency(fl.Field().String())
	return ok
}

func validatePriority(fl validator.FieldLevel) bool {
	return entity.GoalPriority(fl.Field().String()).IsValid()
}

func validateStatus(fl validator.FieldLevel) bool {
	return entity.GoalStatus(fl.Field().String()).IsValid()
}

func validateTimezone(fl validator.FieldLevel) bool {
	return entity.IsValidTimezone(fl.Field().String())
}
