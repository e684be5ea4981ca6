package journal

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"strainlog/internal/effects"
)

// ErrInvalidEntry is wrapped by every *ValidationError.
var ErrInvalidEntry = errors.New("journal: invalid entry")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("effectlabel", func(fl validator.FieldLevel) bool {
			return effects.Valid(fl.Field().String())
		})
	})
	return validate
}

// FieldProblem describes one rejected input field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in an EntryInput.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrInvalidEntry.Error()
	}
	messages := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		messages[i] = p.Message
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntry
}

func validateInput(in EntryInput) error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Problems: []FieldProblem{{Field: "unknown", Message: err.Error()}}}
	}

	problems := make([]FieldProblem, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = FieldProblem{Field: fe.Field(), Message: translate(fe)}
	}
	return &ValidationError{Problems: problems}
}

func translate(fe validator.FieldError) string {
	name := fieldLabel(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "effectlabel":
		return fmt.Sprintf("unknown effect %q", fe.Value())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

func fieldLabel(fe validator.FieldError) string {
	switch fe.StructField() {
	case "ItemName":
		return "strain name"
	case "Potency":
		return "potency"
	}
	if strings.HasPrefix(fe.StructNamespace(), "EntryInput.Ratings[") {
		return "rating " + strings.TrimPrefix(fe.Field(), "Ratings")
	}
	return fe.Field()
}
