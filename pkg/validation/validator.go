package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// Result captures the outcome of one validation pass.
type Result struct {
	// Violations lists every failed rule in field order, then rule order.
	Violations []model.FieldError `json:"violations,omitempty"`
	// Errors keeps the last violation of each field for display.
	Errors model.ErrorMap `json:"errors,omitempty"`
}

// Valid reports whether the snapshot passed every rule.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns every violation message reported for field.
func (r Result) Messages(field model.Field) []string {
	var out []string
	for _, v := range r.Violations {
		if v.Field == field {
			out = append(out, v.Message)
		}
	}
	return out
}

// Err returns nil for a valid result, otherwise a *ValidationError.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Violations: append([]model.FieldError(nil), r.Violations...)}
}

// ValidationError aggregates the violations of a rejected snapshot.
type ValidationError struct {
	Violations []model.FieldError
}

func (e *ValidationError) Error() string {
	fields := e.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("validation: %d violation(s) on %s", len(e.Violations), strings.Join(names, ", "))
}

// Unwrap exposes each violation to errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v
	}
	return out
}

// Fields lists the failing fields in canonical order.
func (e *ValidationError) Fields() []model.Field {
	return e.ErrorMap().Fields()
}

// ErrorMap folds the violations into display form.
func (e *ValidationError) ErrorMap() model.ErrorMap {
	return model.FromFieldErrors(e.Violations)
}

// Option configures a Validator.
type Option func(*Validator)

// WithSchema replaces the default schema.
func WithSchema(schema Schema) Option {
	return func(v *Validator) {
		if schema != nil {
			v.schema = schema.Clone()
		}
	}
}

// Validator evaluates snapshots against a schema. It holds no mutable state
// and may be shared.
type Validator struct {
	schema Schema
}

// New constructs a Validator using the default schema unless overridden.
func New(options ...Option) *Validator {
	v := &Validator{schema: defaultSchema}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate runs the full pass. Every field is evaluated; within a field every
// rule runs unless a gate rule fails first.
func (v *Validator) Validate(snapshot model.Snapshot) Result {
	var violations []model.FieldError
	for _, field := range model.Fields() {
		for _, rule := range v.schema[field] {
			if rule.Check == nil || rule.Check(snapshot) {
				continue
			}
			violations = append(violations, model.FieldError{Field: field, Message: rule.Message})
			if rule.Gate {
				break
			}
		}
	}
	return Result{
		Violations: violations,
		Errors:     model.FromFieldErrors(violations),
	}
}

var defaultValidator = New()

// Validate runs the default schema against snapshot.
func Validate(snapshot model.Snapshot) Result {
	return defaultValidator.Validate(snapshot)
}
