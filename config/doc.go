// Package config loads idpkit configuration from the environment and from
// YAML provider registry files.
//
// Load parses env-tagged structs (the provider packages ship such structs),
// loading a .env file once per process when present. LoadRegistry parses a
// multi-provider YAML file for deployments that configure several identity
// providers at once.
package config
