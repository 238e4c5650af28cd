package brotli

import "fmt"

// DecodeErrorCode identifies the broad category of a decode failure, per
// the error taxonomy in the format specification.
type DecodeErrorCode int

const (
	// EndOfStream means the bit reader was exhausted in the middle of a
	// field it was asked to read.
	EndOfStream DecodeErrorCode = iota + 1
	// InvalidPrefixCode means a set of code lengths failed the Kraft
	// equality, or a decoded symbol had no assigned code.
	InvalidPrefixCode
	// InvalidDistance means a resolved copy distance exceeded the window
	// or the output produced so far, or was non-positive.
	InvalidDistance
	// InvalidContextMap means a context map decode overflowed its
	// declared size, or an inverse-move-to-front index was out of range.
	InvalidContextMap
	// ReservedBitSet means a bit documented as reserved (and required to
	// be zero) was read as one.
	ReservedBitSet
	// TruncatedStream means the input ended before a final (ISLAST)
	// meta-block was ever seen.
	TruncatedStream
	// UnsupportedContextMode means a meta-block declared the UTF8 or
	// Signed literal context mode, whose 256-entry RFC 7932 §7.1 lookup
	// tables this implementation does not carry (see DESIGN.md).
	UnsupportedContextMode
)

func (c DecodeErrorCode) String() string {
	switch c {
	case EndOfStream:
		return "end of stream"
	case InvalidPrefixCode:
		return "invalid prefix code"
	case InvalidDistance:
		return "invalid distance"
	case InvalidContextMap:
		return "invalid context map"
	case ReservedBitSet:
		return "reserved bit set"
	case TruncatedStream:
		return "truncated stream"
	case UnsupportedContextMode:
		return "unsupported context mode"
	default:
		return "unknown decode error"
	}
}

// A DecodeError reports why Decompress rejected a stream.
type DecodeError struct {
	Code   DecodeErrorCode
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("brotli: %s", e.Code)
	}
	return fmt.Sprintf("brotli: %s: %s", e.Code, e.Detail)
}

func decodeErrorf(code DecodeErrorCode, format string, args ...any) error {
	return &DecodeError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// ErrLargeWindowUnsupported is the error for a stream whose window-bits
// header requests the large-window extension, which this implementation
// does not parse. readWindowHeader does not detect that extension, so no
// decode path returns this value.
var ErrLargeWindowUnsupported = &DecodeError{Code: ReservedBitSet, Detail: "large-window streams are not supported"}
