package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
)

func TestParseField(t *testing.T) {
	cases := map[string]model.Field{
		"firstName":           model.FieldFirstName,
		" email ":             model.FieldEmail,
		"phone_number":        model.FieldPhoneNumber,
		"confirm-password":    model.FieldConfirmPassword,
		"BIRTHDATE":           model.FieldBirthDate,
		"interest":            model.FieldInterests,
		"interests[]":         model.FieldInterests,
		"/body/email":         model.FieldEmail,
		"body.phoneNumber":    model.FieldPhoneNumber,
		"#/properties/age":    model.FieldAge,
		"request/body/gender": model.FieldGender,
	}
	for raw, want := range cases {
		got, err := model.ParseField(raw)
		if err != nil {
			t.Fatalf("ParseField(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseField(%q) = %q, want %q", raw, got, want)
		}
	}

	for _, raw := range []string{"", "nickname", "/body/"} {
		if _, err := model.ParseField(raw); !errors.Is(err, model.ErrUnknownField) {
			t.Fatalf("ParseField(%q) error = %v, want ErrUnknownField", raw, err)
		}
	}
}

func TestFieldClassification(t *testing.T) {
	if model.FieldInterests.Scalar() {
		t.Fatalf("interests must not be scalar")
	}
	if !model.FieldAge.Scalar() {
		t.Fatalf("age must be scalar")
	}
	if !model.FieldConfirmPassword.Secret() || model.FieldEmail.Secret() {
		t.Fatalf("secret classification mismatch")
	}
	if len(model.Fields()) != 10 {
		t.Fatalf("expected 10 fields, got %d", len(model.Fields()))
	}
}

func TestParseInterest(t *testing.T) {
	got, err := model.ParseInterest(" Coding ")
	if err != nil || got != model.InterestCoding {
		t.Fatalf("ParseInterest: got %q, %v", got, err)
	}
	if _, err := model.ParseInterest("golf"); !errors.Is(err, model.ErrUnknownInterest) {
		t.Fatalf("expected ErrUnknownInterest, got %v", err)
	}
}

func TestSnapshotWithValueCopiesInterests(t *testing.T) {
	base := model.Snapshot{Interests: []model.Interest{model.InterestSports}}
	next, ok := base.WithValue(model.FieldGender, "other")
	if !ok {
		t.Fatalf("expected gender to be scalar")
	}
	next.Interests[0] = model.InterestReading

	if base.Interests[0] != model.InterestSports {
		t.Fatalf("WithValue must not share the interests backing array")
	}
	if next.Gender != model.GenderOther {
		t.Fatalf("gender not applied: %q", next.Gender)
	}
	if _, ok := base.WithValue(model.FieldInterests, "coding"); ok {
		t.Fatalf("interests must not accept scalar writes")
	}
}

func TestSnapshotRedacted(t *testing.T) {
	snap := model.Snapshot{FirstName: "Jane", Password: "Abcdef1!", ConfirmPassword: "Abcdef1!"}
	got := snap.Redacted()
	want := model.Snapshot{FirstName: "Jane", Interests: []model.Interest{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("redacted mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFieldErrorsKeepsLastMessage(t *testing.T) {
	errs := []model.FieldError{
		{Field: model.FieldPassword, Message: "password must contain at least one symbol"},
		{Field: model.FieldPassword, Message: "password must contain at least one number"},
		{Field: model.FieldAge, Message: "  "},
		{Field: model.Field("nickname"), Message: "ignored"},
	}
	got := model.FromFieldErrors(errs)
	want := model.ErrorMap{model.FieldPassword: "password must contain at least one number"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Field{model.FieldPassword}, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotPublicOmitsSecrets(t *testing.T) {
	snap := model.Snapshot{
		FirstName: "Jane",
		Password:  "Abcdef1!",
		Gender:    model.GenderFemale,
		Interests: []model.Interest{model.InterestReading},
	}
	got := snap.Public()
	want := map[string]any{
		"firstName":   "Jane",
		"lastName":    "",
		"email":       "",
		"phoneNumber": "",
		"age":         "",
		"gender":      "female",
		"interests":   []string{"reading"},
		"birthDate":   "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("public view mismatch (-want +got):\n%s", diff)
	}
}
