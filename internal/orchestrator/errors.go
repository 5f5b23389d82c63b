package orchestrator

import "errors"

// invalidModelTypeError signals a missing model type for 400 mapping.
type invalidModelTypeError struct{}

func (invalidModelTypeError) Error() string { return "model_type is required" }

// IsInvalidModelType reports whether err came from ParseModelType.
func IsInvalidModelType(err error) bool {
	var e invalidModelTypeError
	return errors.As(err, &e)
}
