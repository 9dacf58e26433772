// Package config defines the tool configuration: target endpoint, the
// management-client alias and binary, credential lengths and per-step
// timeouts. Configuration is explicit — loaded from a YAML file plus
// S3CURE_* environment overrides — and handed to constructors, never read
// from ambient process state by the components themselves.
package config
