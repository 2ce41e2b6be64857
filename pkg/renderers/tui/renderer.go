// Package tui hosts the registration form in an interactive terminal session.
// Every field is prompted in layout order, the snapshot is submitted through
// a form.Form and only failing fields are asked again until the submission is
// accepted.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/layout"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/validation"
)

const secretMask = "********"

// Renderer implements render.Renderer for terminal sessions. Render returns
// the accepted snapshot serialized in the configured output format.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	validator         *validation.Validator
	accept            form.AcceptFunc
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs the session. opts.Values seeds the prompts and opts.Errors,
// when present, are shown before the first round.
func (r *Renderer) Render(ctx context.Context, l layout.Layout, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	f := form.New(
		form.WithInitial(opts.Values),
		form.WithValidator(r.validator),
		form.WithAcceptFunc(r.accept),
	)

	if err := r.reportErrors(ctx, l, opts.Errors); err != nil {
		return nil, err
	}

	pending := l.Fields
	for attempt := 1; ; attempt++ {
		for _, entry := range pending {
			if err := r.promptField(ctx, f, entry); err != nil {
				return nil, err
			}
		}

		result, err := f.Submit(ctx)
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
		if result.Valid() {
			break
		}

		if err := r.reportErrors(ctx, l, result.Errors); err != nil {
			return nil, err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return nil, ErrTooManyAttempts
		}

		retry, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.theme.PromptPrefix + retryMessage(len(result.Errors)),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, ErrAborted
		}
		pending = failingFields(l, result.Errors)
	}

	snapshot := f.Snapshot()
	if r.submitTransformer != nil {
		var err error
		snapshot, err = r.submitTransformer(snapshot)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(l, snapshot)
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, entry layout.FieldLayout) error {
	label := r.theme.PromptPrefix + plainText(entry.Label)
	help := plainText(entry.Help)
	snapshot := f.Snapshot()

	switch entry.Input {
	case layout.InputCheckbox:
		return r.promptInterests(ctx, f, entry, label, help, snapshot)
	case layout.InputSelect:
		current, _ := snapshot.Value(entry.Field)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      optionLabels(entry),
			DefaultIndex: optionIndex(entry, current),
			Help:         help,
		})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(entry.Options) {
			value = entry.Options[idx].Value
		}
		return f.UpdateField(entry.Field, value)
	case layout.InputPassword:
		value, err := r.driver.Password(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return err
		}
		return f.UpdateField(entry.Field, value)
	default:
		current, _ := snapshot.Value(entry.Field)
		value, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: current,
			Help:    inputHelp(entry, help),
		})
		if err != nil {
			return err
		}
		return f.UpdateField(entry.Field, value)
	}
}

func (r *Renderer) promptInterests(ctx context.Context, f *form.Form, entry layout.FieldLayout, label, help string, snapshot model.Snapshot) error {
	var defaults []int
	for idx, opt := range entry.Options {
		if snapshot.HasInterest(model.Interest(opt.Value)) {
			defaults = append(defaults, idx)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Options:  optionLabels(entry),
		Defaults: defaults,
		Help:     help,
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	msgs := make([]state.Msg, 0, len(entry.Options))
	for idx, opt := range entry.Options {
		msgs = append(msgs, state.SetInterest{Interest: model.Interest(opt.Value), Included: chosen[idx]})
	}
	return f.Dispatch(msgs...)
}

func (r *Renderer) reportErrors(ctx context.Context, l layout.Layout, errs model.ErrorMap) error {
	for _, field := range errs.Fields() {
		label := string(field)
		if entry, ok := l.Field(field); ok {
			label = strings.TrimSuffix(plainText(entry.Label), ":")
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, errs.Get(field))); err != nil {
			return err
		}
	}
	return nil
}

// failingFields lists the layout entries to prompt again. The password pair
// is always re-asked together so a corrected password can be confirmed.
func failingFields(l layout.Layout, errs model.ErrorMap) []layout.FieldLayout {
	retry := make(map[model.Field]bool, len(errs)+1)
	for field := range errs {
		retry[field] = true
	}
	if retry[model.FieldConfirmPassword] {
		retry[model.FieldPassword] = true
	}
	if retry[model.FieldPassword] {
		retry[model.FieldConfirmPassword] = true
	}

	out := make([]layout.FieldLayout, 0, len(retry))
	for _, entry := range l.Fields {
		if retry[entry.Field] {
			out = append(out, entry)
		}
	}
	return out
}

func retryMessage(n int) string {
	if n == 1 {
		return "Fix the error above and try again?"
	}
	return fmt.Sprintf("Fix the %d errors above and try again?", n)
}

func (r *Renderer) serialize(l layout.Layout, snapshot model.Snapshot) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(snapshot)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(l, snapshot)), nil
	default:
		return json.Marshal(snapshot.Clone())
	}
}

func encodeForm(snapshot model.Snapshot) string {
	values := url.Values{}
	for _, field := range model.Fields() {
		if field == model.FieldInterests {
			for _, tag := range snapshot.Interests {
				values.Add(string(field), string(tag))
			}
			continue
		}
		value, _ := snapshot.Value(field)
		values.Set(string(field), value)
	}
	return values.Encode()
}

func prettyPrint(l layout.Layout, snapshot model.Snapshot) string {
	var b strings.Builder
	for _, entry := range l.Fields {
		label := strings.TrimSuffix(plainText(entry.Label), ":")
		var value string
		switch {
		case entry.Field.Secret():
			value = secretMask
		case entry.Field == model.FieldInterests:
			labels := make([]string, 0, len(snapshot.Interests))
			for _, tag := range snapshot.Interests {
				labels = append(labels, plainText(entry.OptionLabel(string(tag))))
			}
			value = strings.Join(labels, ", ")
		case entry.Input == layout.InputSelect:
			current, _ := snapshot.Value(entry.Field)
			value = plainText(entry.OptionLabel(current))
		default:
			value, _ = snapshot.Value(entry.Field)
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	return b.String()
}

func optionLabels(entry layout.FieldLayout) []string {
	out := make([]string, len(entry.Options))
	for i, opt := range entry.Options {
		out[i] = plainText(opt.Label)
	}
	return out
}

func optionIndex(entry layout.FieldLayout, value string) int {
	for i, opt := range entry.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

func inputHelp(entry layout.FieldLayout, help string) string {
	if help != "" || entry.Placeholder == "" {
		return help
	}
	return entry.Placeholder
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainText strips the inline markup layouts allow in labels and help text.
func plainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(raw)))
}
