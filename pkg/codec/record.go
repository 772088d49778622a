package codec

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// Encodable is implemented by every structure that can write itself to a
// Writer. Length always reports the number of bytes Encode will write and is
// computed from the current field values, never from a previously decoded
// length field.
type Encodable interface {
	Length() uint64
	Encode(w *Writer)
}

// Decodable is implemented by every structure that can read itself from a
// Reader. Decode must be safe to call on a Reader whose Err is already set.
type Decodable interface {
	Decode(r *Reader)
}

// Record is a structure that can both read and write itself.
type Record interface {
	Encodable
	Decodable
}

// maxPreallocate bounds the buffer Marshal reserves up front. Length can be
// derived from a decoded length field, so larger records grow as written.
const maxPreallocate = 1 << 20

// Marshal encodes rec into a new byte slice and checks that the number of
// bytes written matches rec.Length().
func Marshal(rec Encodable) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(min(rec.Length(), maxPreallocate)))

	w := NewWriter(&buf)
	rec.Encode(w)
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if uint64(w.Written()) != rec.Length() {
		return nil, errors.Wrapf(ErrLengthMismatch, "wrote %d bytes, length reports %d", w.Written(), rec.Length())
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data into rec. Trailing bytes are ignored.
func Unmarshal(data []byte, rec Decodable) error {
	r := NewReader(data)
	rec.Decode(r)
	return r.Err
}
