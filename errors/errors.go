package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDispatch Phase = "dispatch" // element type matching
	PhaseClassify Phase = "classify" // layout probing
	PhaseTransfer Phase = "transfer" // buffer ownership hand-off
	PhaseAllocate Phase = "allocate" // host allocation for copies
	PhaseConvert  Phase = "convert"  // strategy execution
	PhaseDevice   Phase = "device"   // device memory operations
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnrecognizedType   Kind = "unrecognized_type"
	KindAllocationTooLarge Kind = "allocation_too_large"
	KindStructuralMismatch Kind = "structural_mismatch"
	KindAlreadyTransferred Kind = "already_transferred"
	KindNotHostResident    Kind = "not_host_resident"
	KindAllocation         Kind = "allocation"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindInvalidData        Kind = "invalid_data"
	KindInvalidInput       Kind = "invalid_input"
	KindNotFound           Kind = "not_found"
	KindUnsupported        Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Array   string
	Element string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Array != "" {
		b.WriteString(" at ")
		b.WriteString(e.Array)
	}

	if e.Element != "" {
		b.WriteString(": element ")
		b.WriteString(e.Element)
	}

	if e.Detail != "" {
		if e.Element != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Array sets the array name
func (b *Builder) Array(name string) *Builder {
	b.err.Array = name
	return b
}

// Element sets the element type name
func (b *Builder) Element(t string) *Builder {
	b.err.Element = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// UnrecognizedType creates an error for an element type outside the supported set
func UnrecognizedType(phase Phase, element string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnrecognizedType,
		Element: element,
		Detail:  "could not determine value type",
	}
}

// AllocationTooLarge creates an error for a byte size that overflows the addressable range
func AllocationTooLarge(phase Phase, count, elemSize int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocationTooLarge,
		Detail: fmt.Sprintf("allocation request too big: %d elements of %d bytes", count, elemSize),
		Value:  count,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// AlreadyTransferred creates an error for a second ownership hand-off of one buffer
func AlreadyTransferred(phase Phase, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyTransferred,
		Detail: fmt.Sprintf("buffer of %d bytes has already been transferred", size),
	}
}

// NotHostResident creates an error for host access to device-only memory
func NotHostResident(phase Phase, device string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotHostResident,
		Detail: fmt.Sprintf("buffer is resident on %s only", device),
	}
}

// StructuralMismatch creates an error for a layout that cannot be viewed as requested
func StructuralMismatch(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStructuralMismatch,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
