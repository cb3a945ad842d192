package oerror

import (
	"errors"
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// Kind groups errors by how callers are expected to react to them.
type Kind uint8

const (
	KindGeneric Kind = iota
	// KindShapeUnavailable is returned for positions whose shape cannot be resolved, e.g. unloaded chunks.
	// Callers fail closed and treat the position as solid ground.
	KindShapeUnavailable
	// KindIndexOutOfRange is returned for history lookups past the recorded depth. Envelopes treat it
	// as not-applicable.
	KindIndexOutOfRange
	// KindInvalidConfiguration is returned at construction time for malformed margins or version gates.
	KindInvalidConfiguration
)

var (
	ErrShapeUnavailable     = &Error{Kind: KindShapeUnavailable, Err: "shape unavailable"}
	ErrIndexOutOfRange      = &Error{Kind: KindIndexOutOfRange, Err: "index out of range"}
	ErrInvalidConfiguration = &Error{Kind: KindInvalidConfiguration, Err: "invalid configuration"}
)

type Error struct {
	Kind Kind
	Err  string
}

// New returns a generic error with the formatted message.
func New(format string, args ...interface{}) *Error {
	return &Error{Kind: KindGeneric, Err: fmt.Sprintf(format, args...)}
}

func ShapeUnavailable(pos cube.Pos) *Error {
	return &Error{Kind: KindShapeUnavailable, Err: fmt.Sprintf("shape unavailable at %v", pos)}
}

func IndexOutOfRange(index, depth int) *Error {
	return &Error{Kind: KindIndexOutOfRange, Err: fmt.Sprintf("index %d out of range (depth=%d)", index, depth)}
}

func InvalidConfiguration(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidConfiguration, Err: "invalid configuration: " + fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

// Is reports whether target is an *Error of the same non-generic kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == KindGeneric {
		return e == t
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindGeneric.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}
