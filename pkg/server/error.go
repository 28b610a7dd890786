package server

import (
	"errors"
	"fmt"
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	// ErrInternalServerError is returned when an unexpected failure happens inside the engine.
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound is returned when the requested resource (route, node, street) does not exist.
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict is returned when the requested action already happened.
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput is returned when the request body or params are not valid.
	ErrBadParamInput = errors.New("given param is not valid")
)

var MessageInternalServerError string = "internal server error"
