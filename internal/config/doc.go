// Package config loads the application configuration.
//
// Configuration is layered: built-in defaults first, then an optional YAML
// file (config.yaml or configs/config.yaml), then WPC_-prefixed environment
// variables. Later layers override earlier ones. Validation runs after all
// layers are applied, so a bad override fails at startup rather than at
// request time.
package config
