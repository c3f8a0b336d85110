package app

import "github.com/iov-one/apestrap/errors"

// app reserves 20~29 error codes
var (
	// ErrNoSuchPath is returned when no handler is registered for the
	// message or query path.
	ErrNoSuchPath = errors.Register(20, "path not registered")
)
