package codec_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// ExampleWriter demonstrates writing big-endian fields
func ExampleWriter() {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)

	w.WriteU32(0x46495200) // "FIR\0"
	w.WriteU16(0x0001)
	w.WriteU8(0xFF)

	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes: %x\n", w.Written(), buf.Bytes())

	// Output:
	// Encoded 7 bytes: 464952000001ff
}

// ExampleReader demonstrates sticky truncation errors
func ExampleReader() {
	r := codec.NewReader([]byte{0x00, 0x02, 0x01})

	tag := r.ReadU16()
	length := r.ReadU16() // only one byte left

	fmt.Printf("Tag: %#04x\n", tag)
	fmt.Printf("Length: %d\n", length)
	fmt.Printf("Truncated: %t\n", errors.Is(r.Err, codec.ErrTruncatedInput))

	// Output:
	// Tag: 0x0002
	// Length: 0
	// Truncated: true
}
