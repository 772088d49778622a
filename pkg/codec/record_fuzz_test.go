//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzMarshal_RoundTrip tests encode/decode round-trip with random inputs
func FuzzMarshal_RoundTrip(f *testing.F) {
	f.Add(uint16(0), []byte(""))
	f.Add(uint16(3), []byte("comment"))
	f.Add(uint16(0xFFFF), []byte{0x00, 0x01, 0x02})

	f.Fuzz(func(t *testing.T, tag uint16, payload []byte) {
		if len(payload) > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		in := &pair{Tag: tag, Payload: payload}
		encoded, err := Marshal(in)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var out pair
		if err := Unmarshal(encoded, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}

		if out.Tag != tag || !bytes.Equal(out.Payload, payload) {
			t.Errorf("round trip mismatch: got (%d, %q), want (%d, %q)", out.Tag, out.Payload, tag, payload)
		}
	})
}

// FuzzReader_NoPanic feeds arbitrary bytes through the reader
func FuzzReader_NoPanic(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x10, 0x41})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		var out pair
		err := Unmarshal(data, &out)
		if err == nil && out.Length() > uint64(len(data)) {
			t.Errorf("decoded %d bytes from %d bytes of input", out.Length(), len(data))
		}
	})
}
