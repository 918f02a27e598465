// Package config handles configuration loading, parsing, and validation
// from environment variables, a .env file and an optional YAML file. It
// provides type-safe access to application settings needed by different
// components while keeping configuration details separate from business logic.
package config
