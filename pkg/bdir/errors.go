package bdir

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnsupportedRepresentationCount is matched by
	// UnsupportedRepresentationCountError.
	ErrUnsupportedRepresentationCount = errors.New("unsupported representation count")

	// ErrHeaderOnly is returned when encoding a record decoded in header-only
	// mode.
	ErrHeaderOnly = errors.New("record was decoded header-only and cannot be encoded")

	// ErrCertificationMismatch is returned when representations of one record
	// disagree on the presence of certification blocks.
	ErrCertificationMismatch = errors.New("representations disagree on certification blocks")

	// ErrMalformedBlock marks an extended data block whose fields contradict
	// each other.
	ErrMalformedBlock = errors.New("malformed extended data block")

	// ErrUnexpectedTag marks an extended data tag that is unknown or out of
	// order.
	ErrUnexpectedTag = errors.New("unexpected extended data tag")
)

// UnsupportedRepresentationCountError is returned when the general header
// declares anything other than one representation.
type UnsupportedRepresentationCountError struct {
	Count uint16
}

func (e *UnsupportedRepresentationCountError) Error() string {
	return fmt.Sprintf("unsupported representation count %d: only single-representation records are decoded", e.Count)
}

func (e *UnsupportedRepresentationCountError) Unwrap() error {
	return ErrUnsupportedRepresentationCount
}

// MalformedTrailerWarning describes a failure while reading the optional
// extended data blocks that follow the image. It is logged and attached to
// the decoded body, never returned as a decode error.
type MalformedTrailerWarning struct {
	Offset int    // offset of the failing block within the decoded buffer
	Tag    uint16 // tag of the failing block, 0 when it could not be read
	Err    error
}

func (w *MalformedTrailerWarning) Error() string {
	return fmt.Sprintf("malformed extended data at offset %d (tag %#04x): %v", w.Offset, w.Tag, w.Err)
}

func (w *MalformedTrailerWarning) Unwrap() error {
	return w.Err
}
