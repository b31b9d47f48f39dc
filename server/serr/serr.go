// Package serr holds the error objects used across cfgkit's HTTP front end.
// It contains the Error type, which can be created with one or more 'cause'
// errors; calling errors.Is() on an Error with a target consisting of any of
// its causes returns true. It also holds a small set of global error
// constants the handlers compare against with errors.Is.
package serr

import "errors"

var (
	ErrNotFound    = errors.New("the requested entity could not be found")
	ErrBadArgument = errors.New("one or more of the arguments is invalid")
)

// Error is a typed error returned by certain functions in the cfgkit server
// as their error value. It contains both a message explaining what happened
// and one or more error values it considers its causes. Error is compatible
// with errors.Is: calling errors.Is on an Error along with any value it holds
// as a cause returns true, without needing manual type assertions.
//
// If Error has at least one cause, Error.Error() returns its primary message
// with the result of calling Error() on its first cause appended to it.
//
// Error should not be used directly; call New to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the
// result of calling Error() on its first cause if one is defined. If no
// message was given but a cause was, the cause's message is returned as-is.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of Error, or nil if none were defined.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether Error either is itself the given target error, or one
// of its causes is.
func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg {
			if len(e.cause) == len(errTarget.cause) {
				allCausesEqual := true
				for i := range e.cause {
					if e.cause[i] != errTarget.cause[i] {
						allCausesEqual = false
						break
					}
				}
				if allCausesEqual {
					return true
				}
			}
		}
	}

	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes. Providing cause errors is not required, but
// will cause it to return true when checked against that error via
// errors.Is.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
