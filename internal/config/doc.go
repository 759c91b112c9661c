// Package config defines the application configuration structure and
// loading logic. Configuration is read from an optional YAML file and from
// environment variables with the TENSLAB_ prefix; environment variables
// take precedence.
package config
