// Package validation implements the schema-driven validation pass for the
// registration form. A Schema maps each field to an ordered list of rules;
// Validate evaluates every field and every rule, collecting all violations in
// a single pass instead of stopping at the first failure.
package validation
