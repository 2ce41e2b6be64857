package gotemplate

import "testing"

func TestKebab(t *testing.T) {
	cases := map[string]string{
		"phoneNumber":     "phone-number",
		"confirmPassword": "confirm-password",
		"age":             "age",
		"birth_date":      "birth-date",
		"":                "",
	}
	for in, want := range cases {
		if got := kebab(in); got != want {
			t.Fatalf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}
