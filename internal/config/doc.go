// Package config provides centralized configuration for the NIFTY 50 history
// exporter. Configuration is resolved once at startup from an optional YAML
// file and NIFTY_* environment variables, with defaults declared in struct
// tags; the resulting Config is treated as immutable for the rest of the run.
package config
