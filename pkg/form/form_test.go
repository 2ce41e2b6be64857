package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestSubmit_RejectedWritesErrorsBack(t *testing.T) {
	f := form.New()
	if err := f.UpdateField(model.FieldFirstName, "Jane"); err != nil {
		t.Fatalf("update: %v", err)
	}

	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Valid() {
		t.Fatalf("expected rejection")
	}
	if f.Phase() != state.PhaseRejected {
		t.Fatalf("phase = %s, want rejected", f.Phase())
	}
	if diff := cmp.Diff(result.Errors, f.Errors()); diff != "" {
		t.Fatalf("state errors differ from result (-want +got):\n%s", diff)
	}
	if f.Errors().Has(model.FieldFirstName) {
		t.Fatalf("first name was provided and must not fail")
	}
}

func TestSubmit_ResubmitReplacesErrors(t *testing.T) {
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	if err := f.UpdateField(model.FieldAge, "17"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.UpdateField(model.FieldEmail, ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := f.UpdateField(model.FieldEmail, "jane@example.com"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if f.Phase() != state.PhaseEditing {
		t.Fatalf("editing after rejection must re-enter editing")
	}
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := model.ErrorMap{model.FieldAge: validation.MsgAgeMin}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_AcceptedHandsOffSnapshot(t *testing.T) {
	var received []model.Snapshot
	f := form.New(
		form.WithInitial(testsupport.ValidSnapshot()),
		form.WithAcceptFunc(func(_ context.Context, snap model.Snapshot) error {
			received = append(received, snap)
			return nil
		}),
	)

	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid() || f.Phase() != state.PhaseAccepted {
		t.Fatalf("expected acceptance, got phase %s errors %v", f.Phase(), result.Errors)
	}
	if len(received) != 1 {
		t.Fatalf("accept func called %d times", len(received))
	}
	if diff := cmp.Diff(testsupport.ValidSnapshot(), received[0]); diff != "" {
		t.Fatalf("handed-off snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ResetOnAccept(t *testing.T) {
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()), form.WithResetOnAccept(true))
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.Snapshot().FirstName != "" || f.Phase() != state.PhaseEditing {
		t.Fatalf("expected a cleared form, got %+v in %s", f.Snapshot(), f.Phase())
	}
}

func TestSubmit_AcceptFailureResumesEditing(t *testing.T) {
	boom := errors.New("downstream unavailable")
	f := form.New(
		form.WithInitial(testsupport.ValidSnapshot()),
		form.WithResetOnAccept(true),
		form.WithAcceptFunc(func(context.Context, model.Snapshot) error { return boom }),
	)

	_, err := f.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected accept error, got %v", err)
	}
	if f.Phase() != state.PhaseEditing {
		t.Fatalf("phase = %s, want editing", f.Phase())
	}
	if diff := cmp.Diff(testsupport.ValidSnapshot(), f.Snapshot()); diff != "" {
		t.Fatalf("values must survive a failed hand-off (-want +got):\n%s", diff)
	}
}

func TestSubmit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := form.New()
	if _, err := f.Submit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.Phase() != state.PhaseEditing {
		t.Fatalf("cancelled submit must not change phase")
	}
}

func TestDispatch_FullScenario(t *testing.T) {
	f := form.New()
	err := f.Dispatch(
		state.SetField{Field: model.FieldFirstName, Value: "Jane"},
		state.SetField{Field: model.FieldLastName, Value: "Doe"},
		state.SetField{Field: model.FieldEmail, Value: "jane@example.com"},
		state.SetField{Field: model.FieldPhoneNumber, Value: "1234567890"},
		state.SetField{Field: model.FieldPassword, Value: "Abcdef1!"},
		state.SetField{Field: model.FieldConfirmPassword, Value: "Abcdef1!"},
		state.SetField{Field: model.FieldAge, Value: "30"},
		state.SetField{Field: model.FieldGender, Value: "female"},
		state.SetInterest{Interest: model.InterestReading, Included: true},
		state.SetField{Field: model.FieldBirthDate, Value: "1994-05-01"},
	)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	result, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid() || len(f.Errors()) != 0 {
		t.Fatalf("expected success with empty error map, got %v", result.Errors)
	}
}
