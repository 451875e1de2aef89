// Package config handles configuration loading, parsing, and validation
// from environment variables. It provides type-safe access to the server,
// database, and auth settings needed by different components while keeping
// configuration details separate from business logic.
package config
