package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnknownField is returned when a raw key does not resolve to a form field.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrUnknownInterest is returned for interest tags outside the enumeration.
	ErrUnknownInterest = errors.New("model: unknown interest")
)

// Field identifies one input of the registration form.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldAge             Field = "age"
	FieldGender          Field = "gender"
	FieldInterests       Field = "interests"
	FieldBirthDate       Field = "birthDate"
)

var fieldOrder = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPassword,
	FieldConfirmPassword,
	FieldAge,
	FieldGender,
	FieldInterests,
	FieldBirthDate,
}

// legacy keys emitted by older clients.
var fieldAliases = map[string]Field{
	"interest": FieldInterests,
}

// Fields returns every field in canonical form order. The slice is a copy.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	return f.index() >= 0
}

// Scalar reports whether the field holds a single text value.
func (f Field) Scalar() bool {
	return f.Valid() && f != FieldInterests
}

// Secret reports whether the field value must never be echoed or logged.
func (f Field) Secret() bool {
	return f == FieldPassword || f == FieldConfirmPassword
}

func (f Field) String() string {
	return string(f)
}

func (f Field) index() int {
	for i, candidate := range fieldOrder {
		if candidate == f {
			return i
		}
	}
	return -1
}

// ParseField resolves a raw key into a Field. Besides the canonical camelCase
// identifiers it accepts snake/kebab case, the legacy "interest" key and
// wrapped paths such as "/body/email", "body.email" or "interests[]".
func ParseField(raw string) (Field, error) {
	key := lastSegment(raw)
	if key == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	if f := Field(key); f.Valid() {
		return f, nil
	}
	folded := foldKey(key)
	for _, f := range fieldOrder {
		if foldKey(string(f)) == folded {
			return f, nil
		}
	}
	if f, ok := fieldAliases[folded]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
}

func lastSegment(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimSuffix(clean, "[]")
	clean = strings.Trim(clean, "#$./")
	if idx := strings.LastIndexAny(clean, "./"); idx >= 0 {
		clean = clean[idx+1:]
	}
	return strings.TrimSpace(clean)
}

func foldKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Gender is the single-select gender value. The zero value means unset.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders returns the selectable genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid reports whether g is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Interest is one tag of the multi-select interests field.
type Interest string

const (
	InterestCoding  Interest = "coding"
	InterestSports  Interest = "sports"
	InterestReading Interest = "reading"
)

// Interests returns the selectable tags in checkbox order.
func Interests() []Interest {
	return []Interest{InterestCoding, InterestSports, InterestReading}
}

// Valid reports whether i is one of the enumerated tags.
func (i Interest) Valid() bool {
	switch i {
	case InterestCoding, InterestSports, InterestReading:
		return true
	default:
		return false
	}
}

// ParseInterest resolves a raw tag, ignoring surrounding whitespace and case.
func ParseInterest(raw string) (Interest, error) {
	tag := Interest(strings.ToLower(strings.TrimSpace(raw)))
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownInterest, raw)
	}
	return tag, nil
}
