// Package model defines the typed registration form model shared by the state
// store, the validation engine and the renderers. Field identifiers are an
// enumeration rather than free-form strings so updates, error maps and layout
// entries all key off the same closed set. Text fields use the empty string as
// the unset sentinel; interests use an empty set.
package model
