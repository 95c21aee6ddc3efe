package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap these
// with context via fmt.Errorf("%w: ...") so errors.Is still matches.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
)
