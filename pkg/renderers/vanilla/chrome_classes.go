package vanilla

// ChromeClass is a typed identifier for the CSS classes the templates emit.
type ChromeClass string

const (
	ClassForm         ChromeClass = "regform-form"
	ClassHeader       ChromeClass = "regform-header"
	ClassField        ChromeClass = "regform-field"
	ClassFieldInvalid ChromeClass = "regform-field--invalid"
	ClassHelp         ChromeClass = "regform-help"
	ClassError        ChromeClass = "regform-error"
	ClassActions      ChromeClass = "regform-actions"
	ClassSummary      ChromeClass = "regform-summary"
)

func chromeClasses() map[string]any {
	return map[string]any{
		"form":          string(ClassForm),
		"header":        string(ClassHeader),
		"field":         string(ClassField),
		"field_invalid": string(ClassFieldInvalid),
		"help":          string(ClassHelp),
		"error":         string(ClassError),
		"actions":       string(ClassActions),
		"summary":       string(ClassSummary),
	}
}
