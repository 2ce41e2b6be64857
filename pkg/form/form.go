// Package form wires the state store and the validation engine into one form
// instance. A Form owns its state exclusively and is not safe for concurrent
// use; hosts create one Form per rendered form.
package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/validation"
)

// AcceptFunc receives an accepted snapshot. It stands in for whatever the host
// does next (persist, forward, navigate away).
type AcceptFunc func(ctx context.Context, snapshot model.Snapshot) error

// Option customises a Form.
type Option func(*Form)

// WithValidator overrides the default validator.
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}

// WithInitial seeds the form with prefilled values.
func WithInitial(snapshot model.Snapshot) Option {
	return func(f *Form) {
		f.state = state.FromSnapshot(snapshot)
	}
}

// WithAcceptFunc registers the collaborator invoked once a submission is
// accepted.
func WithAcceptFunc(fn AcceptFunc) Option {
	return func(f *Form) {
		f.onAccept = fn
	}
}

// WithResetOnAccept clears the form after a successful hand-off.
func WithResetOnAccept(reset bool) Option {
	return func(f *Form) {
		f.resetOnAccept = reset
	}
}

// Form is one live instance of the registration form.
type Form struct {
	state         state.State
	validator     *validation.Validator
	onAccept      AcceptFunc
	resetOnAccept bool
}

// New constructs a Form with an empty snapshot and the default schema.
func New(options ...Option) *Form {
	f := &Form{
		state:     state.New(),
		validator: validation.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// State returns the current state value.
func (f *Form) State() state.State {
	return f.state
}

// Snapshot returns a copy of the current values.
func (f *Form) Snapshot() model.Snapshot {
	return f.state.Snapshot()
}

// Errors returns a copy of the errors from the last submit attempt.
func (f *Form) Errors() model.ErrorMap {
	return f.state.Errors()
}

// Phase reports the lifecycle phase.
func (f *Form) Phase() state.Phase {
	return f.state.Phase()
}

// Dispatch applies typed update messages. On error the form keeps the state
// reached before the failing message.
func (f *Form) Dispatch(msgs ...state.Msg) error {
	next, err := state.Apply(f.state, msgs...)
	f.state = next
	return err
}

// UpdateField is shorthand for dispatching a SetField message.
func (f *Form) UpdateField(field model.Field, value string) error {
	return f.Dispatch(state.SetField{Field: field, Value: value})
}

// ToggleInterest is shorthand for dispatching a SetInterest message.
func (f *Form) ToggleInterest(tag model.Interest, included bool) error {
	return f.Dispatch(state.SetInterest{Interest: tag, Included: included})
}

// Submit runs one validation pass over the whole snapshot. A rejected
// submission writes its error map back into the state and is not reported
// as an error; inspect the returned Result. The error return is reserved for
// failures of the AcceptFunc, after which the form resumes editing with its
// values intact.
func (f *Form) Submit(ctx context.Context) (validation.Result, error) {
	if err := ctx.Err(); err != nil {
		return validation.Result{}, err
	}

	f.state = f.state.BeginSubmit()
	snapshot := f.state.Snapshot()
	result := f.validator.Validate(snapshot)

	if !result.Valid() {
		f.state = f.state.Reject(result.Errors)
		return result, nil
	}

	f.state = f.state.Accept()
	if f.onAccept != nil {
		if err := f.onAccept(ctx, snapshot); err != nil {
			f.state = f.state.Resume()
			return result, fmt.Errorf("form: accept: %w", err)
		}
	}
	if f.resetOnAccept {
		f.state = f.state.Reset()
	}
	return result, nil
}
