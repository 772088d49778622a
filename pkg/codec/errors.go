package codec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTruncatedInput is matched by every TruncatedInputError.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrLengthMismatch is returned when an encoder writes a different number
	// of bytes than its Length reports.
	ErrLengthMismatch = errors.New("encoded length mismatch")

	// ErrCountOverflow is returned when a slice is too long for the count or
	// length field that describes it on the wire.
	ErrCountOverflow = errors.New("count overflows its field")
)

// TruncatedInputError reports a read that needed more bytes than the cursor
// had left.
type TruncatedInputError struct {
	Offset    int // cursor offset of the failed read
	Needed    int // bytes the field required
	Available int // bytes left in the cursor
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at offset %d: need %d bytes, have %d", e.Offset, e.Needed, e.Available)
}

func (e *TruncatedInputError) Unwrap() error {
	return ErrTruncatedInput
}
