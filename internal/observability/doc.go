// Package observability builds the zap logger and the Prometheus metrics of
// the host process.
package observability
