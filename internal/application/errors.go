package application

import "errors"

var (
	ErrUnsupportedNamespace = errors.New("application: unsupported namespace")
	ErrMalformedRequest     = errors.New("application: malformed request")
)
