package state

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// Msg is a typed update produced by an input event.
type Msg interface {
	apply(State) (State, error)
}

// SetField replaces the value of a scalar field.
type SetField struct {
	Field model.Field
	Value string
}

func (m SetField) apply(s State) (State, error) {
	return s.UpdateField(m.Field, m.Value)
}

// SetInterest checks or unchecks one interest tag.
type SetInterest struct {
	Interest model.Interest
	Included bool
}

func (m SetInterest) apply(s State) (State, error) {
	return s.ToggleInterest(m.Interest, m.Included)
}

// Apply folds msgs into s in order. On failure the state before the failing
// message is returned alongside the error.
func Apply(s State, msgs ...Msg) (State, error) {
	for i, msg := range msgs {
		if msg == nil {
			continue
		}
		next, err := msg.apply(s)
		if err != nil {
			return s, fmt.Errorf("state: apply message %d: %w", i, err)
		}
		s = next
	}
	return s, nil
}
