package codec

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

// Writer is a buffered big-endian sink. Like Reader it keeps the first error
// and turns every later write into a no-op.
type Writer struct {
	w       *bufio.Writer
	n       int64
	scratch [4]byte
	Err     error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Fail records err unless an earlier error is already set.
func (w *Writer) Fail(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

func (w *Writer) write(b []byte) {
	if w.Err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	if err != nil {
		w.Err = err
	}
}

// WriteU8 writes one byte.
func (w *Writer) WriteU8(v uint8) {
	w.scratch[0] = v
	w.write(w.scratch[:1])
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	w.write(w.scratch[:2])
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	binary.BigEndian.PutUint32(w.scratch[:4], v)
	w.write(w.scratch[:4])
}

// WriteBytes writes b verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.write(b)
}

// WriteCountU8 writes n as a one-byte count.
func (w *Writer) WriteCountU8(n int) {
	if n < 0 || n > math.MaxUint8 {
		w.Fail(errors.Wrapf(ErrCountOverflow, "%d does not fit in one byte", n))
		return
	}
	w.WriteU8(uint8(n))
}

// WriteLengthU16 writes n as a two-byte length.
func (w *Writer) WriteLengthU16(n uint64) {
	if n > math.MaxUint16 {
		w.Fail(errors.Wrapf(ErrCountOverflow, "%d does not fit in two bytes", n))
		return
	}
	w.WriteU16(uint16(n))
}

// WriteLengthU32 writes n as a four-byte length.
func (w *Writer) WriteLengthU32(n uint64) {
	if n > math.MaxUint32 {
		w.Fail(errors.Wrapf(ErrCountOverflow, "%d does not fit in four bytes", n))
		return
	}
	w.WriteU32(uint32(n))
}

// Written returns the number of bytes accepted so far.
func (w *Writer) Written() int64 {
	return w.n
}

// Flush pushes buffered bytes to the underlying writer and returns the first
// error seen by the Writer.
func (w *Writer) Flush() error {
	if w.Err != nil {
		return w.Err
	}
	if err := w.w.Flush(); err != nil {
		w.Err = err
	}
	return w.Err
}
