package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-regform/pkg/model"
)

// Check reports whether a snapshot satisfies a rule. Checks receive the whole
// snapshot so cross-field rules can compare sibling values.
type Check func(model.Snapshot) bool

// Rule pairs a predicate with the message reported when it fails. A failing
// Gate rule skips the remaining rules of the same field.
type Rule struct {
	Check   Check
	Message string
	Gate    bool
}

// PasswordSymbols lists the characters accepted by the password symbol rule.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// DateLayouts lists the accepted birth date encodings.
var DateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

var (
	phonePattern     = regexp.MustCompile(`^\d{10}$`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	decimalPattern   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

	tagValidatorOnce sync.Once
	tagValidator     *validator.Validate
)

func tags() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New()
	})
	return tagValidator
}

func text(field model.Field) func(model.Snapshot) string {
	return func(s model.Snapshot) string {
		value, _ := s.Value(field)
		return value
	}
}

// Required fails when the field holds the empty-string sentinel. Required
// rules gate the rest of the field's rules.
func Required(field model.Field, message string) Rule {
	rule := Tag(field, "required", message)
	rule.Gate = true
	return rule
}

// Matches fails when the field value does not match re.
func Matches(field model.Field, re *regexp.Regexp, message string) Rule {
	get := text(field)
	return Rule{
		Check:   func(s model.Snapshot) bool { return re.MatchString(get(s)) },
		Message: message,
	}
}

// Tag checks the field value against a go-playground/validator tag such as
// "email" or "oneof=a b c".
func Tag(field model.Field, tag, message string) Rule {
	get := text(field)
	return Rule{
		Check:   func(s model.Snapshot) bool { return tags().Var(get(s), tag) == nil },
		Message: message,
	}
}

// MinLength fails when the value holds fewer than n characters.
func MinLength(field model.Field, n int, message string) Rule {
	return Tag(field, fmt.Sprintf("min=%d", n), message)
}

// ContainsAny fails when the value holds none of the characters in chars.
func ContainsAny(field model.Field, chars, message string) Rule {
	get := text(field)
	return Rule{
		Check:   func(s model.Snapshot) bool { return strings.ContainsAny(get(s), chars) },
		Message: message,
	}
}

// EqualsField fails unless field equals other byte-for-byte.
func EqualsField(field, other model.Field, message string) Rule {
	get, want := text(field), text(other)
	return Rule{
		Check:   func(s model.Snapshot) bool { return get(s) == want(s) },
		Message: message,
	}
}

// Number gates on the value parsing as a finite number.
func Number(field model.Field, message string) Rule {
	get := text(field)
	return Rule{
		Check: func(s model.Snapshot) bool {
			_, ok := ParseNumber(get(s))
			return ok
		},
		Message: message,
		Gate:    true,
	}
}

// Min fails when the numeric value is below limit. Unparseable values pass;
// pair with Number to report them.
func Min(field model.Field, limit float64, message string) Rule {
	get := text(field)
	return Rule{
		Check: func(s model.Snapshot) bool {
			n, ok := ParseNumber(get(s))
			return !ok || n >= limit
		},
		Message: message,
	}
}

// Max fails when the numeric value is above limit.
func Max(field model.Field, limit float64, message string) Rule {
	get := text(field)
	return Rule{
		Check: func(s model.Snapshot) bool {
			n, ok := ParseNumber(get(s))
			return !ok || n <= limit
		},
		Message: message,
	}
}

// Date fails unless the value parses with one of DateLayouts.
func Date(field model.Field, message string) Rule {
	get := text(field)
	return Rule{
		Check: func(s model.Snapshot) bool {
			_, ok := ParseDate(get(s))
			return ok
		},
		Message: message,
	}
}

// MinInterests fails when fewer than n interests are selected.
func MinInterests(n int, message string) Rule {
	return Rule{
		Check:   func(s model.Snapshot) bool { return len(s.Interests) >= n },
		Message: message,
	}
}

// ParseNumber coerces a text value into a finite float, ignoring surrounding
// whitespace. Only plain decimal notation with an optional exponent is
// accepted: hex floats, digit separators, and the Inf and NaN spellings fail.
func ParseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(trimmed) {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseDate parses a calendar date using DateLayouts.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
