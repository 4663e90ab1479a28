package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrInvalidInput    = errors.New("invalid input")

	ErrDocumentNotPDF   = errors.New("only PDF files are allowed")
	ErrDocumentTooLarge = errors.New("file size must not exceed 10MB")
	ErrDocumentEmpty    = errors.New("document is empty")
	ErrDocumentNoName   = errors.New("document has no name")
)

// FieldErrors maps JSON field names to human readable messages. It unwraps
// to ErrInvalidInput.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(f[name], " "))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return ErrInvalidInput
}
