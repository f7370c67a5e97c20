package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/notes/pkg/core"
)

// schema validates note DTOs through struct tags.
var schema *validator.Validate

func init() {
	schema = validator.New()

	// Report json field names ("title") instead of Go names ("Title").
	schema.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := schema.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("register category validator: %v", err))
	}
}

func validateCategory(fl validator.FieldLevel) bool {
	return core.Category(fl.Field().String()).Valid()
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors lists schema violations in struct field order.
type FieldErrors []FieldError

// Error implements error.
func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Get returns the message for field, or "" when it is valid.
func (fe FieldErrors) Get(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// CheckCreate validates a create request. It returns nil or FieldErrors.
func CheckCreate(dto core.CreateNote) error {
	return check(dto)
}

// CheckUpdate validates an update request. It returns nil or FieldErrors.
func CheckUpdate(dto core.UpdateNote) error {
	return check(dto)
}

func check(dto any) error {
	err := schema.Struct(dto)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: schemaMessage(fe)})
	}
	return out
}

func schemaMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required", "min":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, fe.Param())
	case "category":
		return "Please select a valid category"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func fieldLabel(field string) string {
	switch field {
	case "id":
		return "ID"
	case "":
		return "Value"
	default:
		return strings.ToUpper(field[:1]) + field[1:]
	}
}
