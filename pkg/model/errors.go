package model

import (
	"fmt"
	"strings"
)

// FieldError is a validation failure attached to one field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorMap holds at most one message per field. A missing key means the field
// currently has no error. Maps are replaced wholesale on each submit attempt.
type ErrorMap map[Field]string

// Get returns the message attached to field, if any.
func (m ErrorMap) Get(field Field) string {
	if m == nil {
		return ""
	}
	return m[field]
}

// Has reports whether field carries an error.
func (m ErrorMap) Has(field Field) bool {
	if m == nil {
		return false
	}
	_, ok := m[field]
	return ok
}

// Clone returns an independent copy; nil stays nil.
func (m ErrorMap) Clone() ErrorMap {
	if m == nil {
		return nil
	}
	out := make(ErrorMap, len(m))
	for field, message := range m {
		out[field] = message
	}
	return out
}

// Fields lists the failing fields in canonical form order.
func (m ErrorMap) Fields() []Field {
	if len(m) == 0 {
		return nil
	}
	out := make([]Field, 0, len(m))
	for _, field := range fieldOrder {
		if _, ok := m[field]; ok {
			out = append(out, field)
		}
	}
	return out
}

// Strings returns a string-keyed copy for JSON payloads and templates.
func (m ErrorMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for field, message := range m {
		out[string(field)] = message
	}
	return out
}

// FromFieldErrors folds a list of violations into an ErrorMap. A later
// message for the same field replaces an earlier one. Blank messages are
// skipped.
func FromFieldErrors(errs []FieldError) ErrorMap {
	out := make(ErrorMap, len(errs))
	for _, fe := range errs {
		message := strings.TrimSpace(fe.Message)
		if message == "" || !fe.Field.Valid() {
			continue
		}
		out[fe.Field] = message
	}
	return out
}
