// Package state holds the form state store: the current snapshot, the error
// map from the last submit attempt and the lifecycle phase. State is a value;
// every operation returns a new State and leaves the receiver untouched, so
// the store can be driven and tested without a rendering environment.
package state
