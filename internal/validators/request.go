package validators

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-applicant-desk/models"
)

// MaxDocumentSize is the largest document the backend accepts.
const MaxDocumentSize = 10 << 20

// RequestValidator validates request models through their `validate` struct
// tags and documents through the backend's upload rules.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a RequestValidator that reports fields by
// their JSON names.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	return &RequestValidator{validate: v}
}

// Validate dispatches on the input type. Documents are checked against the
// upload rules; any other struct is checked against its tags. fields, when
// given, are Go struct field names that restrict the check.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return validateDocument(value)
	case *models.Document:
		if value == nil {
			return ErrDocumentEmpty
		}
		return validateDocument(*value)
	}

	if obj == nil {
		return ErrUnsupportedType
	}
	kind := reflect.TypeOf(obj).Kind()
	if kind == reflect.Pointer {
		kind = reflect.TypeOf(obj).Elem().Kind()
	}
	if kind != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func validateDocument(doc models.Document) error {
	if doc.Name == "" {
		return ErrDocumentNoName
	}
	if !strings.EqualFold(filepath.Ext(doc.Name), ".pdf") {
		return ErrDocumentNotPDF
	}
	if len(doc.Content) == 0 {
		return ErrDocumentEmpty
	}
	if len(doc.Content) > MaxDocumentSize {
		return ErrDocumentTooLarge
	}
	return nil
}
