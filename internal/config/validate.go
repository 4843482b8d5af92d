package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validation errors.
var (
	// ErrInvalid wraps every error returned by Validate.
	ErrInvalid = errors.New("invalid settings")

	ErrEmptyBrowserCommand = errors.New("browser command cannot be empty")
	ErrInvalidBinarySuffix = errors.New("binary suffix must start with '/'")
	ErrEmptyBrowserHome    = errors.New("browser home cannot be empty")
	ErrInvalidGrace        = errors.New("shutdown grace must be positive")
	ErrInvalidLogLevel     = errors.New("log level must be 'debug', 'info', 'warn', or 'error'")
	ErrInvalidMetricsAddr  = errors.New("metrics addr must be host:port")
)

// validLogLevels is the list of accepted log level values.
var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// ValidationError wraps a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every setting and returns all problems joined together,
// wrapped in ErrInvalid.
func (s *Settings) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Browser.Command) == "" {
		errs = append(errs, &ValidationError{
			Field:   "browser.command",
			Message: "cannot be empty",
			Err:     ErrEmptyBrowserCommand,
		})
	}

	if !strings.HasPrefix(s.Browser.BinarySuffix, "/") {
		errs = append(errs, &ValidationError{
			Field:   "browser.binary_suffix",
			Value:   s.Browser.BinarySuffix,
			Message: "must start with '/'",
			Err:     ErrInvalidBinarySuffix,
		})
	}

	if s.Browser.Home == "" {
		errs = append(errs, &ValidationError{
			Field:   "browser.home",
			Message: "cannot be empty",
			Err:     ErrEmptyBrowserHome,
		})
	}

	if s.Lifecycle.ShutdownGrace <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "lifecycle.shutdown_grace",
			Value:   s.Lifecycle.ShutdownGrace.String(),
			Message: "must be positive",
			Err:     ErrInvalidGrace,
		})
	}

	if !validLogLevels[strings.ToLower(s.Log.Level)] {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Value:   s.Log.Level,
			Message: "must be 'debug', 'info', 'warn', or 'error'",
			Err:     ErrInvalidLogLevel,
		})
	}

	if s.Metrics.Addr != "" {
		if _, _, err := net.SplitHostPort(s.Metrics.Addr); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "metrics.addr",
				Value:   s.Metrics.Addr,
				Message: "must be host:port",
				Err:     ErrInvalidMetricsAddr,
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
