package iris

import (
	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/codec"
)

// Record is an iris image BDIR.
type Record = bdir.Record[*Representation]

// Decode reads an iris record from data.
func Decode(data []byte, opts bdir.DecodeOptions) (*Record, error) {
	rec, err := bdir.DecodeRecord(codec.NewReader(data), decodeRepresentation, opts)
	if err != nil {
		return nil, err
	}
	if rec.Header.FormatIdentifier != bdir.FormatIris {
		opts.Log().Debug("unexpected format identifier for iris record",
			"format", rec.Header.FormatIdentifier)
	}
	return rec, nil
}

// Marshal encodes rec, recomputing every length field. A record decoded
// header-only is rejected before anything is encoded.
func Marshal(rec *Record) ([]byte, error) {
	for _, rep := range rec.Representations {
		if rep != nil && rep.Body == nil {
			return nil, bdir.ErrHeaderOnly
		}
	}
	return codec.Marshal(rec)
}
