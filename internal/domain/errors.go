package domain

import "errors"

var (
	// ErrInvalidArgument is returned for an unknown side, a non-positive level
	// or a negative size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned when a level exceeds the number of price levels on a side.
	ErrOutOfRange = errors.New("out of range")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err with the name of the offending field.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}
