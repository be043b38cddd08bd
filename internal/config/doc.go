// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// which is how API credentials are expected to be supplied (BYBIT_API_KEY,
// BYBIT_API_SECRET). See configs/watcher.example.yaml for the full schema.
package config
