// Package exitcode defines process exit codes for the assistant binary.
package exitcode

const (
	// Success indicates a clean shutdown.
	Success = 0

	// ConfigError indicates invalid configuration or flags.
	ConfigError = 2

	// BackendError indicates the health or reminder infrastructure failed
	// to start.
	BackendError = 3
)
