package providers

import (
	"errors"
	"fmt"
)

type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "provider not found: " + e.id }

// ErrNotFound returns an error for an unregistered provider id.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether err indicates an unknown provider id.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// upstreamError is a non-2xx answer from a provider.
type upstreamError struct {
	url    string
	status int
	body   string
}

func (e upstreamError) Error() string {
	msg := fmt.Sprintf("%s returned http %d", e.url, e.status)
	if e.body != "" {
		msg += ": " + e.body
	}
	return msg
}

// IsUpstream reports whether err is a non-2xx provider response.
func IsUpstream(err error) bool {
	var ue upstreamError
	return errors.As(err, &ue)
}
