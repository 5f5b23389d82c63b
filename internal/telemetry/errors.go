package telemetry

import (
	"errors"
	"time"
)

// unavailableError signals that a query interface is missing or unusable
// (driver not installed, /proc not mounted, ...).
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return "telemetry unavailable: " + e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates a missing query interface.
func IsUnavailable(err error) bool {
	var ue unavailableError
	return errors.As(err, &ue)
}

// timeoutError is returned when a probe does not answer in time.
type timeoutError struct{ after time.Duration }

func (e timeoutError) Error() string { return "telemetry probe timed out after " + e.after.String() }

// IsTimeout reports whether err came from a probe exceeding its deadline.
func IsTimeout(err error) bool {
	var te timeoutError
	return errors.As(err, &te)
}
