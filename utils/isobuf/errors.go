package isobuf

import "errors"

// Sentinel errors. Every failure returned by a Reader is an *Error whose Kind
// matches one of these under errors.Is, no matter how deep it sits in a chain.
var (
	ErrInsufficientData   = errors.New("not enough data")
	ErrNonMinimalEncoding = errors.New("non-minimal encoding")

	// ErrTrailingBytes is returned by Writer.WriteVarIntRaw when its input
	// holds more than one encoding.
	ErrTrailingBytes = errors.New("trailing bytes after var-int")

	// ErrInvalidSize is returned by FromHexFixed on a length mismatch.
	ErrInvalidSize = errors.New("invalid size")
)

// Op names the Reader operation that produced an error.
type Op string

const (
	OpRead          Op = "read"
	OpReadU8        Op = "read_u8"
	OpReadU16BE     Op = "read_u16_be"
	OpReadU32BE     Op = "read_u32_be"
	OpReadU64BE     Op = "read_u64_be"
	OpReadVarIntRaw Op = "read_var_int_raw"
)

// Error is the structured failure of a single read.
//
// A var-int that runs out of bytes is reported as an Error for OpReadVarIntRaw
// whose Cause is the failed inner read (OpReadU8 for the discriminant, OpRead
// for the payload). Callers that only care about the kind use errors.Is;
// callers that need the position of the shortfall use errors.As on Cause.
type Error struct {
	Kind  error
	Op    Op
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "isobuf error"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Op != "" {
		msg += " in " + string(e.Op)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func insufficient(op Op, cause error) error {
	return &Error{Kind: ErrInsufficientData, Op: op, Cause: cause}
}

func nonMinimal(op Op) error {
	return &Error{Kind: ErrNonMinimalEncoding, Op: op}
}
