// Package config loads application settings.
//
// Values come from the process environment, optionally seeded by a .env file, and
// fall back to the `default` struct tags of each section:
//   - Server: port, API key, body limit
//   - Storage: driver, connection string or account name and key
//   - Queue: driver
//   - Policy: retry count and interval, location mode, per-call timeout
//   - Log: level and format
//   - Telemetry: OTLP endpoint and service name
//
// Nested keys map to upper-case variables, e.g. storage.connection_string is read
// from STORAGE_CONNECTION_STRING.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
