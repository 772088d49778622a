package codec

import (
	"bytes"
	"errors"
	"runtime"
	"testing"
)

// pair is a minimal two-field record used to exercise the contract.
type pair struct {
	Tag     uint16
	Payload []byte
}

func (p *pair) Length() uint64 {
	return 2 + 4 + uint64(len(p.Payload))
}

func (p *pair) Encode(w *Writer) {
	w.WriteU16(p.Tag)
	w.WriteLengthU32(uint64(len(p.Payload)))
	w.WriteBytes(p.Payload)
}

func (p *pair) Decode(r *Reader) {
	p.Tag = r.ReadU16()
	n := r.ReadU32()
	p.Payload = r.ReadBytes(int(n))
}

// liar reports one byte more than it writes.
type liar struct{}

func (liar) Length() uint64   { return 3 }
func (liar) Encode(w *Writer) { w.WriteU16(7) }

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		tag     uint16
		payload []byte
	}{
		{name: "empty payload", tag: 0x0001, payload: []byte{}},
		{name: "small payload", tag: 0x00FF, payload: []byte("comment")},
		{name: "binary payload", tag: 0xFFFF, payload: []byte{0x00, 0x01, 0xFE, 0xFF}},
		{name: "large payload", tag: 0x0003, payload: bytes.Repeat([]byte("v"), 10240)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := &pair{Tag: tc.tag, Payload: tc.payload}

			encoded, err := Marshal(in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			if uint64(len(encoded)) != in.Length() {
				t.Errorf("encoded %d bytes, Length reports %d", len(encoded), in.Length())
			}

			var out pair
			if err := Unmarshal(encoded, &out); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if out.Tag != tc.tag {
				t.Errorf("Tag mismatch: got %#04x, want %#04x", out.Tag, tc.tag)
			}
			if !bytes.Equal(out.Payload, tc.payload) {
				t.Errorf("Payload mismatch: got %d bytes, want %d", len(out.Payload), len(tc.payload))
			}
		})
	}
}

func TestMarshalLengthMismatch(t *testing.T) {
	_, err := Marshal(liar{})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

// inflated reports a length taken from an untrusted field and refuses to
// encode.
type inflated struct{}

var errRefused = errors.New("refused")

func (inflated) Length() uint64   { return 0xF0000000 }
func (inflated) Encode(w *Writer) { w.Fail(errRefused) }

func TestMarshalDoesNotPreallocateDeclaredLength(t *testing.T) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := Marshal(inflated{})
	runtime.ReadMemStats(&after)

	if !errors.Is(err, errRefused) {
		t.Fatalf("expected errRefused, got %v", err)
	}
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 64<<20 {
		t.Fatalf("allocated %d bytes for a record that never encoded", grew)
	}
}

func TestReaderBigEndian(t *testing.T) {
	r := NewReader([]byte{0x46, 0x49, 0x52, 0x00, 0x30, 0x32, 0x01})

	if got := r.ReadU32(); got != 0x46495200 {
		t.Errorf("ReadU32: got %#08x", got)
	}
	if got := r.ReadU16(); got != 0x3032 {
		t.Errorf("ReadU16: got %#04x", got)
	}
	if got := r.ReadU8(); got != 0x01 {
		t.Errorf("ReadU8: got %#02x", got)
	}
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Len() != 0 || r.Offset() != 7 {
		t.Errorf("cursor: len=%d offset=%d", r.Len(), r.Offset())
	}
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02})

	_ = r.ReadU16()
	if got := r.ReadU32(); got != 0 {
		t.Errorf("truncated read returned %d", got)
	}

	var te *TruncatedInputError
	if !errors.As(r.Err, &te) {
		t.Fatalf("expected *TruncatedInputError, got %v", r.Err)
	}
	if te.Offset != 2 || te.Needed != 4 || te.Available != 1 {
		t.Errorf("unexpected error detail: %+v", te)
	}
	if !errors.Is(r.Err, ErrTruncatedInput) {
		t.Error("error does not match ErrTruncatedInput")
	}

	// Later reads stay no-ops even when enough bytes would remain.
	if got := r.ReadU8(); got != 0 {
		t.Errorf("read after error returned %d", got)
	}
	if r.Offset() != 2 {
		t.Errorf("offset moved after error: %d", r.Offset())
	}
}

func TestReaderPeekAndSkip(t *testing.T) {
	r := NewReader([]byte{0x00, 0x03, 0xAA, 0xBB, 0xCC})

	tag, ok := r.PeekU16()
	if !ok || tag != 0x0003 {
		t.Fatalf("PeekU16 = %#04x, %v", tag, ok)
	}
	if r.Offset() != 0 {
		t.Error("PeekU16 consumed input")
	}

	r.Skip(2)
	if !bytes.Equal(r.Rest(), []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("Rest = %x", r.Rest())
	}

	r.Skip(2)
	if _, ok := r.PeekU16(); ok {
		t.Error("PeekU16 succeeded with one byte left")
	}

	r.Skip(2)
	if !errors.Is(r.Err, ErrTruncatedInput) {
		t.Errorf("expected truncation from Skip, got %v", r.Err)
	}
}

func TestReadBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	r := NewReader(src)
	b := r.ReadBytes(3)
	src[0] = 9
	if b[0] != 1 {
		t.Error("ReadBytes aliases the source buffer")
	}
}

func TestWriterOverflow(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.WriteCountU8(255)
	w.WriteLengthU16(65535)
	if w.Err != nil {
		t.Fatalf("unexpected error at field limits: %v", w.Err)
	}

	w.WriteCountU8(256)
	if !errors.Is(w.Err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow, got %v", w.Err)
	}

	w.WriteU8(1)
	if w.Written() != 3 {
		t.Errorf("write after failure was accepted, written=%d", w.Written())
	}
	if err := w.Flush(); !errors.Is(err, ErrCountOverflow) {
		t.Errorf("Flush returned %v", err)
	}
}

func TestWriterLengthOverflow(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteLengthU16(1 << 16)
	if !errors.Is(w.Err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow, got %v", w.Err)
	}

	w = NewWriter(&buf)
	w.WriteLengthU32(1 << 32)
	if !errors.Is(w.Err, ErrCountOverflow) {
		t.Fatalf("expected ErrCountOverflow, got %v", w.Err)
	}
}
