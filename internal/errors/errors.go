package errors

import (
	"errors"
	"fmt"
)

// Common error types for the member portal gateway
var (
	// Token errors
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// Upstream errors
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// Record errors
	ErrRecordShape = errors.New("record shape invalid")

	// Deployment errors
	ErrServerConfiguration = errors.New("server configuration error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
