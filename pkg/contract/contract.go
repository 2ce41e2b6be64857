// Package contract publishes the OpenAPI description of the registration
// submit boundary and checks JSON payloads against its request schema before
// they are decoded. Business rules stay with the validation package.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

// SubmitPath is the route of the submit operation.
const SubmitPath = "/register"

// ErrPayload wraps structural problems found by CheckPayload.
var ErrPayload = errors.New("contract: payload does not match request schema")

//go:embed openapi.yaml
var document []byte

// Contract is a loaded and validated OpenAPI document.
type Contract struct {
	doc     *openapi3.T
	request *openapi3.Schema

	once sync.Once
	json []byte
	err  error
}

// Document returns the raw embedded OpenAPI YAML.
func Document() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	request, err := requestSchema(doc)
	if err != nil {
		return nil, err
	}
	return &Contract{doc: doc, request: request}, nil
}

func requestSchema(doc *openapi3.T) (*openapi3.Schema, error) {
	if doc.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}
	item := doc.Paths.Value(SubmitPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s not described", SubmitPath)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no request body", SubmitPath)
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no JSON schema", SubmitPath)
	}
	return media.Schema.Value, nil
}

// OperationID returns the identifier of the submit operation.
func (c *Contract) OperationID() string {
	if c == nil || c.doc == nil {
		return ""
	}
	item := c.doc.Paths.Value(SubmitPath)
	if item == nil || item.Post == nil {
		return ""
	}
	return item.Post.OperationID
}

// Problem is one structural violation found in a payload.
type Problem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Keyword is the schema keyword that failed, such as "enum" or "oneOf".
	Keyword string `json:"keyword,omitempty"`
}

// PayloadError lists the structural problems of a JSON payload. It matches
// ErrPayload with errors.Is.
type PayloadError struct {
	Problems []Problem
	// Cause is the full schema error reported by the OpenAPI validator. Its
	// text embeds the offending values.
	Cause error
}

func (e *PayloadError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if p.Field == "" {
			parts[i] = p.Message
			continue
		}
		parts[i] = p.Field + ": " + p.Message
	}
	return fmt.Sprintf("%s: %s", ErrPayload, strings.Join(parts, "; "))
}

func (e *PayloadError) Is(target error) bool { return target == ErrPayload }

func (e *PayloadError) Unwrap() error { return e.Cause }

// CheckPayload verifies the structure of a decoded JSON body: value types and
// the interest enumeration. Keys and interest tags are canonicalized the same
// way the submission decoder reads them before the schema is applied. Every
// violation is reported, not only the first.
func (c *Contract) CheckPayload(payload map[string]any) error {
	if c == nil || c.request == nil {
		return errors.New("contract: not loaded")
	}
	if err := c.request.VisitJSON(Canonical(payload), openapi3.MultiErrors()); err != nil {
		return &PayloadError{Problems: problems(err), Cause: err}
	}
	return nil
}

// Canonical returns a copy of payload keyed by canonical field names. Aliases
// of the same field merge: scalar values resolve in sorted key order with the
// last one winning, interest lists concatenate. A single interest string
// becomes a one-element list and tags are lowercased. Null values are dropped.
// Keys that name no field are kept unchanged.
func Canonical(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var interests []any
	var interestsSeen bool
	var malformed any
	for _, key := range keys {
		value := payload[key]
		field, err := model.ParseField(key)
		if err != nil {
			out[key] = value
			continue
		}
		if value == nil {
			continue
		}
		if field != model.FieldInterests {
			out[string(field)] = value
			continue
		}

		interestsSeen = true
		switch v := value.(type) {
		case string:
			interests = appendTag(interests, v)
		case []any:
			for _, item := range v {
				if tag, ok := item.(string); ok {
					interests = appendTag(interests, tag)
					continue
				}
				interests = append(interests, item)
			}
		default:
			malformed = value
		}
	}
	switch {
	case malformed != nil:
		out[string(model.FieldInterests)] = malformed
	case interestsSeen:
		if interests == nil {
			interests = []any{}
		}
		out[string(model.FieldInterests)] = interests
	}
	return out
}

func appendTag(list []any, raw string) []any {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if tag == "" {
		return list
	}
	return append(list, tag)
}

func problems(err error) []Problem {
	var out []Problem
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case openapi3.MultiError:
			for _, inner := range e {
				walk(inner)
			}
		case *openapi3.SchemaError:
			field := ""
			if pointer := e.JSONPointer(); len(pointer) > 0 {
				field = pointer[0]
			}
			out = append(out, Problem{Field: field, Message: e.Reason, Keyword: e.SchemaField})
		default:
			out = append(out, Problem{Message: err.Error()})
		}
	}
	walk(err)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// MarshalJSON renders the loaded document as JSON. The result is cached.
func (c *Contract) MarshalJSON() ([]byte, error) {
	if c == nil || c.doc == nil {
		return nil, errors.New("contract: not loaded")
	}
	c.once.Do(func() {
		c.json, c.err = c.doc.MarshalJSON()
	})
	return c.json, c.err
}
