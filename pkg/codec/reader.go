package codec

import "encoding/binary"

// Reader is a big-endian cursor over a byte slice.
//
// The first read that runs past the end of the data sets Err to a
// *TruncatedInputError. After that every read is a no-op returning zero
// values, so nested decoders only need to check Err once at the top.
type Reader struct {
	data []byte
	off  int
	Err  error
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Rest returns the unread bytes without consuming them.
func (r *Reader) Rest() []byte {
	return r.data[r.off:]
}

// Fail records err unless an earlier error is already set. Decoders use it
// to reject structurally impossible values.
func (r *Reader) Fail(err error) {
	if r.Err == nil {
		r.Err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.Err != nil {
		return nil
	}
	if n < 0 || r.Len() < n {
		r.Err = &TruncatedInputError{Offset: r.off, Needed: n, Available: r.Len()}
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// ReadBytes reads n bytes into a freshly allocated slice.
func (r *Reader) ReadBytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// PeekU16 returns the next big-endian uint16 without consuming it. ok is
// false when fewer than two bytes remain or Err is set.
func (r *Reader) PeekU16() (v uint16, ok bool) {
	if r.Err != nil || r.Len() < 2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(r.data[r.off:]), true
}
