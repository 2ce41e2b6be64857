// Package layout loads the presentation metadata of the registration form:
// labels, placeholders, input kinds and option labels. Layout documents are
// YAML or JSON; inline markup in labels and help text is sanitized on load.
package layout
