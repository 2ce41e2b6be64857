package state

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrNotScalar is returned when a scalar write targets the interests field.
var ErrNotScalar = errors.New("state: field is not a scalar value")

// Phase tracks where a form instance is in its submit lifecycle.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseAccepted
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAccepted:
		return "accepted"
	case PhaseRejected:
		return "rejected"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the owned form state. The zero value is an empty form in the
// editing phase.
type State struct {
	snapshot model.Snapshot
	errors   model.ErrorMap
	phase    Phase
}

// New returns an empty form.
func New() State {
	return State{snapshot: model.Snapshot{}.Clone()}
}

// FromSnapshot seeds a state with prefilled values.
func FromSnapshot(snapshot model.Snapshot) State {
	return State{snapshot: snapshot.Clone()}
}

// Snapshot returns a copy of the current values.
func (s State) Snapshot() model.Snapshot {
	return s.snapshot.Clone()
}

// Errors returns a copy of the current error map.
func (s State) Errors() model.ErrorMap {
	return s.errors.Clone()
}

// Phase reports the lifecycle phase.
func (s State) Phase() Phase {
	return s.phase
}

// UpdateField overwrites one scalar field. Values are stored verbatim; no
// validation runs. Editing a rejected or accepted form returns it to editing
// while leaving the displayed errors in place.
func (s State) UpdateField(field model.Field, value string) (State, error) {
	if !field.Valid() {
		return s, fmt.Errorf("%w: %q", model.ErrUnknownField, field)
	}
	if !field.Scalar() {
		return s, fmt.Errorf("%w: %s", ErrNotScalar, field)
	}
	next, _ := s.snapshot.WithValue(field, value)
	return s.edited(next), nil
}

// ToggleInterest adds tag to the interests set when included is true and
// removes it otherwise. Both directions are idempotent.
func (s State) ToggleInterest(tag model.Interest, included bool) (State, error) {
	if !tag.Valid() {
		return s, fmt.Errorf("%w: %q", model.ErrUnknownInterest, tag)
	}

	next := s.snapshot.Clone()
	if included {
		if !next.HasInterest(tag) {
			next.Interests = append(next.Interests, tag)
		}
		return s.edited(next), nil
	}

	kept := next.Interests[:0]
	for _, selected := range next.Interests {
		if selected != tag {
			kept = append(kept, selected)
		}
	}
	next.Interests = kept
	return s.edited(next), nil
}

// SetErrors replaces the whole error map.
func (s State) SetErrors(errs model.ErrorMap) State {
	s.errors = errs.Clone()
	return s
}

// BeginSubmit moves the form into the submitting phase.
func (s State) BeginSubmit() State {
	s.phase = PhaseSubmitting
	return s
}

// Reject records the errors of a failed submit attempt.
func (s State) Reject(errs model.ErrorMap) State {
	s.errors = errs.Clone()
	s.phase = PhaseRejected
	return s
}

// Accept clears errors and marks the submission as accepted.
func (s State) Accept() State {
	s.errors = model.ErrorMap{}
	s.phase = PhaseAccepted
	return s
}

// Resume returns the form to editing without touching values or errors.
func (s State) Resume() State {
	s.phase = PhaseEditing
	return s
}

// Reset discards values and errors.
func (s State) Reset() State {
	return New()
}

func (s State) edited(next model.Snapshot) State {
	s.snapshot = next
	s.phase = PhaseEditing
	return s
}
