//go:build bench
// +build bench

package codec

import (
	"bytes"
	"testing"
)

func BenchmarkMarshal(b *testing.B) {
	benchmarks := []struct {
		name    string
		payload []byte
	}{
		{name: "small", payload: []byte("comment")},
		{name: "medium", payload: bytes.Repeat([]byte("v"), 1000)},
		{name: "large", payload: bytes.Repeat([]byte("v"), 100000)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			rec := &pair{Tag: 3, Payload: bm.payload}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Marshal(rec); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	benchmarks := []struct {
		name    string
		payload []byte
	}{
		{name: "small", payload: []byte("comment")},
		{name: "medium", payload: bytes.Repeat([]byte("v"), 1000)},
		{name: "large", payload: bytes.Repeat([]byte("v"), 100000)},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			data, err := Marshal(&pair{Tag: 3, Payload: bm.payload})
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var out pair
				if err := Unmarshal(data, &out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
