package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrInvalidLayout wraps every structural problem found in a layout document.
var ErrInvalidLayout = errors.New("layout: invalid document")

type documentFile struct {
	Title    string      `json:"title" yaml:"title"`
	Subtitle string      `json:"subtitle" yaml:"subtitle"`
	Submit   Action      `json:"submit" yaml:"submit"`
	Fields   []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Field       string   `json:"field" yaml:"field"`
	Label       string   `json:"label" yaml:"label"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty" yaml:"help,omitempty"`
	Input       string   `json:"input,omitempty" yaml:"input,omitempty"`
	CSSClass    string   `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

var defaultInputs = map[model.Field]Input{
	model.FieldFirstName:       InputText,
	model.FieldLastName:        InputText,
	model.FieldEmail:           InputEmail,
	model.FieldPhoneNumber:     InputTel,
	model.FieldPassword:        InputPassword,
	model.FieldConfirmPassword: InputPassword,
	model.FieldAge:             InputNumber,
	model.FieldGender:          InputSelect,
	model.FieldInterests:       InputCheckbox,
	model.FieldBirthDate:       InputDate,
}

// LoadFile reads a layout document from disk.
func LoadFile(path string) (Layout, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir), name)
}

// LoadFS reads and parses the layout stored at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Layout, error) {
	if fsys == nil {
		return Layout{}, fmt.Errorf("layout: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Load parses a JSON or YAML layout document. source names the document in
// error messages.
func Load(data []byte, source string) (Layout, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return Layout{}, err
	}
	return normaliseDocument(doc, source)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("layout: parse %s: invalid JSON or YAML", source)
}

func normaliseDocument(doc documentFile, source string) (Layout, error) {
	out := Layout{
		Title:    sanitizeText(doc.Title),
		Subtitle: sanitizeText(doc.Subtitle),
		Submit: Action{
			Label: sanitizeText(doc.Submit.Label),
			Icon:  sanitizeIconMarkup(doc.Submit.Icon),
		},
		Source: source,
		Fields: make([]FieldLayout, 0, len(doc.Fields)),
	}
	if out.Submit.Label == "" {
		out.Submit.Label = "Submit"
	}

	seen := make(map[model.Field]bool, len(doc.Fields))
	for idx, raw := range doc.Fields {
		entry, err := normaliseField(raw)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: %s field #%d: %v", ErrInvalidLayout, source, idx, err)
		}
		if seen[entry.Field] {
			return Layout{}, fmt.Errorf("%w: %s declares %q more than once", ErrInvalidLayout, source, entry.Field)
		}
		seen[entry.Field] = true
		out.Fields = append(out.Fields, entry)
	}

	var missing []string
	for _, f := range model.Fields() {
		if !seen[f] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return Layout{}, fmt.Errorf("%w: %s is missing fields %s", ErrInvalidLayout, source, strings.Join(missing, ", "))
	}

	return out, nil
}

func normaliseField(raw fieldFile) (FieldLayout, error) {
	field, err := model.ParseField(raw.Field)
	if err != nil {
		return FieldLayout{}, err
	}

	input := Input(strings.ToLower(strings.TrimSpace(raw.Input)))
	if input == "" {
		input = defaultInputs[field]
	}
	if !input.Valid() {
		return FieldLayout{}, fmt.Errorf("%s: unknown input %q", field, raw.Input)
	}
	if err := checkInput(field, input); err != nil {
		return FieldLayout{}, err
	}

	label := sanitizeText(raw.Label)
	if label == "" {
		label = string(field)
	}

	entry := FieldLayout{
		Field:       field,
		Label:       label,
		Placeholder: strings.TrimSpace(raw.Placeholder),
		Help:        sanitizeText(raw.Help),
		Input:       input,
		CSSClass:    strings.TrimSpace(raw.CSSClass),
	}

	if input.Choice() {
		options, err := normaliseOptions(field, raw.Options)
		if err != nil {
			return FieldLayout{}, err
		}
		entry.Options = options
	} else if len(raw.Options) > 0 {
		return FieldLayout{}, fmt.Errorf("%s: options are only valid on select and checkbox inputs", field)
	}

	return entry, nil
}

func checkInput(field model.Field, input Input) error {
	switch field {
	case model.FieldGender:
		if input != InputSelect {
			return fmt.Errorf("%s: input must be %q", field, InputSelect)
		}
	case model.FieldInterests:
		if input != InputCheckbox {
			return fmt.Errorf("%s: input must be %q", field, InputCheckbox)
		}
	default:
		if input.Choice() {
			return fmt.Errorf("%s: input %q needs an enumerated field", field, input)
		}
	}
	return nil
}

func normaliseOptions(field model.Field, raw []Option) ([]Option, error) {
	allowed := enumeration(field)
	if len(raw) == 0 {
		out := make([]Option, len(allowed))
		for i, value := range allowed {
			out[i] = Option{Value: value, Label: titleCase(value)}
		}
		return out, nil
	}

	known := make(map[string]bool, len(allowed))
	for _, value := range allowed {
		known[value] = true
	}

	out := make([]Option, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, opt := range raw {
		value := strings.TrimSpace(opt.Value)
		if !known[value] {
			return nil, fmt.Errorf("%s: unknown option %q", field, opt.Value)
		}
		if seen[value] {
			return nil, fmt.Errorf("%s: duplicate option %q", field, value)
		}
		seen[value] = true
		label := sanitizeText(opt.Label)
		if label == "" {
			label = titleCase(value)
		}
		out = append(out, Option{Value: value, Label: label})
	}
	if len(out) != len(allowed) {
		return nil, fmt.Errorf("%s: options must list every value of %s", field, strings.Join(allowed, ", "))
	}
	return out, nil
}

func enumeration(field model.Field) []string {
	var out []string
	switch field {
	case model.FieldGender:
		for _, g := range model.Genders() {
			out = append(out, string(g))
		}
	case model.FieldInterests:
		for _, tag := range model.Interests() {
			out = append(out, string(tag))
		}
	}
	return out
}

func titleCase(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
