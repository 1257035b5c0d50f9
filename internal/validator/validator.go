package validator

import (
	"fmt"

	"github.com/eduplatform/school-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the school domain rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom domain rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates a struct and converts tag failures into
// ValidationErrors. Returns nil when the struct is valid.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   fe.Field(),
			Message: v.errorMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errors
}

func (v *Validator) registerDomainRules() {
	// Class id format "9A": digits followed by one letter.
	v.validate.RegisterValidation("class_id", func(fl validator.FieldLevel) bool {
		return models.ValidClassID(fl.Field().String())
	})

	// Time slot label "HH:MM-HH:MM".
	v.validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		return models.ValidTimeSlot(fl.Field().String())
	})

	// Grade values are integers in [1,5].
	v.validate.RegisterValidation("grade_value", func(fl validator.FieldLevel) bool {
		value := fl.Field().Int()
		return value >= 1 && value <= 5
	})

	v.validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		return models.DifficultyLevel(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().String()).Valid()
	})
}

func (v *Validator) errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "class_id":
		return `must match digits+letter, e.g. "9A"`
	case "time_slot":
		return `must be a "HH:MM-HH:MM" time slot`
	case "grade_value":
		return "must be an integer between 1 and 5"
	case "difficulty_level":
		return "must be easy, medium or hard"
	case "user_role":
		return "must be Admin, Teacher, Student or Parent"
	case "priority":
		return "must be Low, Medium or High"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
