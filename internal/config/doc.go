// Package config loads the host process configuration from the environment
// and an optional .env file.
package config
