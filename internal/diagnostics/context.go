// Package diagnostics implements the context/error-kind model that every
// fallible entry point in the type system, registry, and parser threads
// through: a scoped carrier of a failure kind and message, rather than a
// bare Go error, so that callers can distinguish "no value, here's why"
// from the zero value of whatever type they asked for.
package diagnostics

import "fmt"

// Kind classifies why a call failed. Success is the zero value so a
// freshly-created Context reads as successful until something fails it.
type Kind int

const (
	Success Kind = iota
	MemoryError
	ValueError
	TypeError
	InvalidArgumentError
	RuntimeError
	NotImplementedError
	LexError
	ParseError
	OSError
)

var kindNames = map[Kind]string{
	Success:              "Success",
	MemoryError:          "MemoryError",
	ValueError:           "ValueError",
	TypeError:            "TypeError",
	InvalidArgumentError: "InvalidArgumentError",
	RuntimeError:         "RuntimeError",
	NotImplementedError:  "NotImplementedError",
	LexError:             "LexError",
	ParseError:           "ParseError",
	OSError:              "OSError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownError"
}

// Context is a single call chain's failure carrier. It is not safe to
// share across goroutines; each call chain owns one.
type Context struct {
	kind    Kind
	message string
}

// New returns a Context in the Success state.
func New() *Context {
	return &Context{kind: Success}
}

// Fail sets kind and message. It is the non-formatted counterpart of Errorf.
func (c *Context) Fail(kind Kind, message string) {
	c.kind = kind
	c.message = message
}

// Errorf sets kind and a printf-formatted message.
func (c *Context) Errorf(kind Kind, format string, args ...any) {
	c.kind = kind
	c.message = fmt.Sprintf(format, args...)
}

// Clear resets the context to Success, discarding any prior failure.
func (c *Context) Clear() {
	c.kind = Success
	c.message = ""
}

// Kind reports the current failure kind (Success if none).
func (c *Context) Kind() Kind {
	return c.kind
}

// Message reports the current diagnostic message, empty on Success.
func (c *Context) Message() string {
	return c.message
}

// OK reports whether the context is in the Success state.
func (c *Context) OK() bool {
	return c.kind == Success
}

// Error adapts a failed Context to the standard error interface. It
// returns nil on Success, so callers may write
// `if err := ctx.Error(); err != nil { return err }` at API boundaries
// that prefer the (T, error) convention over explicit context threading.
func (c *Context) Error() error {
	if c.kind == Success {
		return nil
	}
	return &contextError{kind: c.kind, message: c.message}
}

type contextError struct {
	kind    Kind
	message string
}

func (e *contextError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// KindOf reports the failure kind carried by err when err was produced
// by Context.Error. It reports Success for a nil err and RuntimeError for
// any other error, including one that merely wraps a Context error.
func KindOf(err error) Kind {
	if err == nil {
		return Success
	}
	if ce, ok := err.(*contextError); ok {
		return ce.kind
	}
	return RuntimeError
}

// Fprint renders a diagnostic as "<KindName>: <message>\n" per §6.1.
func (c *Context) Fprint() string {
	return fmt.Sprintf("%s: %s\n", c.kind, c.message)
}
