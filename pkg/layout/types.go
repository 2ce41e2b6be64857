package layout

import "github.com/goliatone/go-regform/pkg/model"

// Input names the control used to capture a field.
type Input string

const (
	InputText     Input = "text"
	InputEmail    Input = "email"
	InputTel      Input = "tel"
	InputPassword Input = "password"
	InputNumber   Input = "number"
	InputSelect   Input = "select"
	InputCheckbox Input = "checkbox"
	InputDate     Input = "date"
)

// Valid reports whether i is a known input kind.
func (i Input) Valid() bool {
	switch i {
	case InputText, InputEmail, InputTel, InputPassword, InputNumber, InputSelect, InputCheckbox, InputDate:
		return true
	default:
		return false
	}
}

// Choice reports whether the input presents a fixed option list.
func (i Input) Choice() bool {
	return i == InputSelect || i == InputCheckbox
}

// Layout describes how the registration form is presented.
type Layout struct {
	Title    string
	Subtitle string
	Submit   Action
	Fields   []FieldLayout
	Source   string
}

// Action is the submit button.
type Action struct {
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// FieldLayout carries the presentation of a single field.
type FieldLayout struct {
	Field       model.Field
	Label       string
	Placeholder string
	Help        string
	Input       Input
	CSSClass    string
	Options     []Option
}

// Option is one entry of a select or checkbox group.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field returns the layout entry for f.
func (l Layout) Field(f model.Field) (FieldLayout, bool) {
	for _, entry := range l.Fields {
		if entry.Field == f {
			return entry, true
		}
	}
	return FieldLayout{}, false
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	out := l
	if l.Fields != nil {
		out.Fields = make([]FieldLayout, len(l.Fields))
		for i, entry := range l.Fields {
			cloned := entry
			cloned.Options = append([]Option(nil), entry.Options...)
			out.Fields[i] = cloned
		}
	}
	return out
}

// OptionLabel resolves the display label of value, falling back to value.
func (f FieldLayout) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
