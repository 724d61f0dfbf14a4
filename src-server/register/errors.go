package register

import "errors"

// Caller-visible failure kinds. Everything else that comes out of this
// package is a wrapped store error.
var (
	ErrNotFound          = errors.New("registration or code not found")
	ErrPassNotFound      = errors.New("pass not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFull              = errors.New("registration is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotJoinable       = errors.New("this code is no longer accepting members")
	ErrForbidden         = errors.New("actor role not allowed for this action")
)
