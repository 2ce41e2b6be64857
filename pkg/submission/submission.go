// Package submission turns raw input events into typed state messages. Hosts
// decode url-encoded posts or JSON bodies here and dispatch the result into a
// form.Form; nothing in this package validates business rules.
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
)

// ErrInvalidValue reports a JSON value whose type cannot feed a field.
var ErrInvalidValue = errors.New("submission: invalid value")

// FromValues decodes an url-encoded post. Unknown keys are ignored. Interest
// tags arrive either as repeated "interests" (or legacy "interest") values or
// as checkbox-style keys named after the tag ("coding=on").
func FromValues(values url.Values) ([]state.Msg, error) {
	if len(values) == 0 {
		return nil, nil
	}

	scalars := make(map[model.Field]string)
	var tags []model.Interest
	var checked []model.Interest

	for _, key := range sortedKeys(values) {
		raw := values[key]
		field, err := model.ParseField(key)
		if err != nil {
			tag, tagErr := model.ParseInterest(key)
			if tagErr != nil {
				continue
			}
			if checkboxOn(raw) {
				checked = append(checked, tag)
			}
			continue
		}

		if field == model.FieldInterests {
			for _, entry := range raw {
				if strings.TrimSpace(entry) == "" {
					continue
				}
				tag, err := model.ParseInterest(entry)
				if err != nil {
					return nil, fmt.Errorf("submission: %s: %w", key, err)
				}
				tags = append(tags, tag)
			}
			continue
		}

		if len(raw) == 0 {
			continue
		}
		scalars[field] = raw[len(raw)-1]
	}

	return build(scalars, append(tags, canonical(checked)...)), nil
}

// FromJSON decodes a JSON object already unmarshalled into a map. Numbers are
// accepted for text fields (age is commonly sent as a number). Interests may
// be an array of tags or a single tag string.
func FromJSON(payload map[string]any) ([]state.Msg, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	scalars := make(map[model.Field]string)
	var tags []model.Interest

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, err := model.ParseField(key)
		if err != nil {
			continue
		}
		value := payload[key]
		if value == nil {
			continue
		}

		if field == model.FieldInterests {
			list, err := interestList(value)
			if err != nil {
				return nil, fmt.Errorf("submission: %s: %w", key, err)
			}
			tags = append(tags, list...)
			continue
		}

		text, err := scalarText(value)
		if err != nil {
			return nil, fmt.Errorf("submission: %s: %w", key, err)
		}
		scalars[field] = text
	}

	return build(scalars, tags), nil
}

// Apply decodes nothing; it folds already decoded messages into s.
func Apply(s state.State, msgs []state.Msg) (state.State, error) {
	return state.Apply(s, msgs...)
}

func build(scalars map[model.Field]string, tags []model.Interest) []state.Msg {
	msgs := make([]state.Msg, 0, len(scalars)+len(tags))
	for _, field := range model.Fields() {
		if field == model.FieldInterests {
			for _, tag := range tags {
				msgs = append(msgs, state.SetInterest{Interest: tag, Included: true})
			}
			continue
		}
		if value, ok := scalars[field]; ok {
			msgs = append(msgs, state.SetField{Field: field, Value: value})
		}
	}
	return msgs
}

func interestList(value any) ([]model.Interest, error) {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: interest tag %v (%T)", ErrInvalidValue, item, item)
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("%w: interests must be a list, got %T", ErrInvalidValue, value)
	}

	out := make([]model.Interest, 0, len(raw))
	for _, entry := range raw {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		tag, err := model.ParseInterest(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

func scalarText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrInvalidValue, value)
	}
}

func checkboxOn(values []string) bool {
	if len(values) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(values[len(values)-1])) {
	case "", "off", "false", "0", "no":
		return false
	default:
		return true
	}
}

func canonical(tags []model.Interest) []model.Interest {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[model.Interest]bool, len(tags))
	for _, tag := range tags {
		seen[tag] = true
	}
	out := make([]model.Interest, 0, len(seen))
	for _, tag := range model.Interests() {
		if seen[tag] {
			out = append(out, tag)
		}
	}
	return out
}

func sortedKeys(values url.Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
