// Package config assembles the immutable run configuration.
//
// A ProvisionRequest is built once at process start by layering, lowest
// precedence first: built-in defaults, an optional YAML config file, the
// IRONBATCH_* environment, and explicitly set command-line flags. Components
// receive the finished value and never consult ambient configuration.
package config
