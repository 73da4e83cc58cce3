package nsf

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSignature is returned when the source does not start with the NSF signature.
	ErrBadSignature = errors.New("bad NSF signature")
	// ErrTruncated is returned when the source ends before the header or the declared program data.
	ErrTruncated = errors.New("truncated NSF data")
)

// FormatError describes why a source could not be decoded as an NSF file.
// It wraps either ErrBadSignature or ErrTruncated.
type FormatError struct {
	Err    error
	Offset int64 // file offset of the section that failed

	Need int // bytes required by the section
	Have int // bytes available

	Signature []byte // bytes found instead of the signature
}

func (e *FormatError) Error() string {
	if errors.Is(e.Err, ErrBadSignature) {
		return fmt.Sprintf("%s: expected % X, got % X", e.Err, Signature[:], e.Signature)
	}
	return fmt.Sprintf("%s: need %d bytes at offset 0x%02X, have %d", e.Err, e.Need, e.Offset, e.Have)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// WarningKind identifies a soft constraint of the header that is violated.
type WarningKind uint8

// warning kinds.
const (
	ReservedBitsSet WarningKind = iota + 1
	StartingSongOutOfRange
	AddressOutOfExpectedRange
	UnexpectedVersion
	NoSongs
)

func (k WarningKind) String() string {
	switch k {
	case ReservedBitsSet:
		return "ReservedBitsSet"
	case StartingSongOutOfRange:
		return "StartingSongOutOfRange"
	case AddressOutOfExpectedRange:
		return "AddressOutOfExpectedRange"
	case UnexpectedVersion:
		return "UnexpectedVersion"
	case NoSongs:
		return "NoSongs"
	default:
		return fmt.Sprintf("WarningKind(%d)", uint8(k))
	}
}

// Warning is a soft constraint violation of a successfully decoded header.
type Warning struct {
	Kind    WarningKind
	Field   string // header field that violates the constraint
	Value   uint32 // value of the field
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}
