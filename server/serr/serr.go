// Package serr holds common error objects used across the prepll server.
// Notably, it contains the Error type, which can be created with one or more
// 'cause' errors. Calling errors.Is() on this Error type with an argument
// consisting of any of the errors it has as a cause will return true.
//
// This package also holds several global error constants created via
// errors.New().
package serr

import "errors"

var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrDB            = errors.New("an error occured with the DB")
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
	ErrGrammar       = errors.New("the grammar could not be prepared")
)

// Error is a typed error returned by the prepll server backend. It contains
// both a message explaining what happened and one or more error values it
// considers to be its causes. Calling errors.Is on an Error with any of its
// causes returns true.
//
// If Error has at least one cause defined, the result of calling Error.Error()
// will be its primary message with the result of calling Error() on its first
// cause appended to it.
//
// Error should not be used directly; call New to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message of the Error followed by the message of its first
// cause. If there is no message, only the first cause's message is returned.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of Error. The return value will be nil if no causes
// were defined for it.
//
// This is only used by Go 1.20 and later; 1.19 relies on Error.Is.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether any cause of Error is the target or matches it via
// errors.Is.
func (e Error) Is(target error) bool {
	for i := range e.cause {
		if e.cause[i] == target || errors.Is(e.cause[i], target) {
			return true
		}
	}
	return false
}

// As sets target to the first cause of Error that errors.As can assign to it.
//
// This function is for interaction with the errors API.
func (e Error) As(target interface{}) bool {
	for i := range e.cause {
		if errors.As(e.cause[i], target) {
			return true
		}
	}
	return false
}

// WrapDB creates a new Error that wraps the given error as a cause and
// automatically adds ErrDB as another cause. A message may be provided if
// desired with msg, but it may be left as "".
func WrapDB(msg string, err error) Error {
	return Error{
		msg:   msg,
		cause: []error{err, ErrDB},
	}
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
