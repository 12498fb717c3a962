package typeinfo

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes an engine failure.
type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindNoMatchingConstructor Kind = "no_matching_constructor"
	KindArityMismatch         Kind = "arity_mismatch"
	KindConstructionFailed    Kind = "construction_failed"
	KindInvocationFailed      Kind = "invocation_failed"
	KindPropertyNotFound      Kind = "property_not_found"
	KindPropertyReadOnly      Kind = "property_read_only"
	KindPropertyWriteOnly     Kind = "property_write_only"
	KindMethodNotFound        Kind = "method_not_found"
	KindTypeMismatch          Kind = "type_mismatch"
	KindInvalidDescriptor     Kind = "invalid_descriptor"
)

// Error codes, stable across releases.
// TI001-TI009: resolution errors
// TI010-TI019: execution errors
// TI020-TI029: registration errors
var kindCodes = map[Kind]string{
	KindNotFound:              "TI001",
	KindNoMatchingConstructor: "TI002",
	KindArityMismatch:         "TI003",
	KindPropertyNotFound:      "TI004",
	KindPropertyReadOnly:      "TI005",
	KindPropertyWriteOnly:     "TI006",
	KindMethodNotFound:        "TI007",
	KindTypeMismatch:          "TI008",
	KindConstructionFailed:    "TI010",
	KindInvocationFailed:      "TI011",
	KindInvalidDescriptor:     "TI020",
}

// Code returns the stable error code of the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "TI000"
}

// Error is the single error type returned by the engine. Err holds the
// underlying cause for construction and invocation failures.
type Error struct {
	Kind   Kind
	Type   TypeID
	Member string
	Arity  int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Code())
	b.WriteString(": ")
	b.WriteString(e.message())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) message() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("type not found: %s", e.Type)
	case KindNoMatchingConstructor:
		return fmt.Sprintf("no constructor of %s accepts %d argument(s)", e.Type, e.Arity)
	case KindArityMismatch:
		return fmt.Sprintf("no overload of %s.%s accepts %d argument(s)", e.Type, e.Member, e.Arity)
	case KindConstructionFailed:
		return fmt.Sprintf("constructing %s failed", e.Type)
	case KindInvocationFailed:
		return fmt.Sprintf("invoking %s.%s failed", e.Type, e.Member)
	case KindPropertyNotFound:
		return fmt.Sprintf("property not found: %s.%s", e.Type, e.Member)
	case KindPropertyReadOnly:
		return fmt.Sprintf("property %s.%s has no setter", e.Type, e.Member)
	case KindPropertyWriteOnly:
		return fmt.Sprintf("property %s.%s has no getter", e.Type, e.Member)
	case KindMethodNotFound:
		return fmt.Sprintf("method not found: %s.%s", e.Type, e.Member)
	case KindTypeMismatch:
		return fmt.Sprintf("instance of %s does not match %s", e.Type, e.Member)
	case KindInvalidDescriptor:
		if e.Member != "" {
			return fmt.Sprintf("invalid descriptor for %s: %s", e.Type, e.Member)
		}
		return fmt.Sprintf("invalid descriptor for %s", e.Type)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so callers can
// match against the Err* sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrNoMatchingConstructor = &Error{Kind: KindNoMatchingConstructor}
	ErrArityMismatch         = &Error{Kind: KindArityMismatch}
	ErrConstructionFailed    = &Error{Kind: KindConstructionFailed}
	ErrInvocationFailed      = &Error{Kind: KindInvocationFailed}
	ErrPropertyNotFound      = &Error{Kind: KindPropertyNotFound}
	ErrPropertyReadOnly      = &Error{Kind: KindPropertyReadOnly}
	ErrPropertyWriteOnly     = &Error{Kind: KindPropertyWriteOnly}
	ErrMethodNotFound        = &Error{Kind: KindMethodNotFound}
	ErrTypeMismatch          = &Error{Kind: KindTypeMismatch}
	ErrInvalidDescriptor     = &Error{Kind: KindInvalidDescriptor}
)

// ErrArgumentType is wrapped when an argument cannot be used as the declared
// parameter type. No conversion is attempted.
var ErrArgumentType = errors.New("argument type mismatch")

// ErrTargetType is wrapped when a bound member receives a target of the wrong type.
var ErrTargetType = errors.New("target type mismatch")

// KindOf returns the Kind of err, or "" if err is not an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// panicError converts a recovered panic value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
