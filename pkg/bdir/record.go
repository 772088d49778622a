package bdir

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// Representation is what a modality package plugs into Record.
type Representation interface {
	codec.Encodable

	// Certified reports whether the representation header carries a
	// certification section.
	Certified() bool
}

// Record is a general header followed by its representations. Only
// single-representation records are decoded, but the model keeps a slice so
// the general header's count is derived rather than assumed.
type Record[R Representation] struct {
	Header          GeneralHeader
	Representations []R
}

// Representation returns the first representation, or the zero value when
// there is none.
func (rec *Record[R]) Representation() R {
	var zero R
	if len(rec.Representations) == 0 {
		return zero
	}
	return rec.Representations[0]
}

func (rec *Record[R]) representationsLength() uint64 {
	var n uint64
	for _, rep := range rec.Representations {
		n += rep.Length()
	}
	return n
}

func (rec *Record[R]) Length() uint64 {
	return GeneralHeaderLength + rec.representationsLength()
}

// Encode writes the general header with its length and count recomputed from
// the representations, then each representation. The certification flag is
// rewritten only when it disagrees with the representations.
func (rec *Record[R]) Encode(w *codec.Writer) {
	h := rec.Header

	total := rec.representationsLength()
	if total > math.MaxUint32-GeneralHeaderLength {
		w.Fail(errors.Wrapf(codec.ErrCountOverflow, "record length %d", total+GeneralHeaderLength))
		return
	}
	if len(rec.Representations) > math.MaxUint16 {
		w.Fail(errors.Wrapf(codec.ErrCountOverflow, "%d representations", len(rec.Representations)))
		return
	}

	certified := false
	for i, rep := range rec.Representations {
		c := rep.Certified()
		if i > 0 && c != certified {
			w.Fail(ErrCertificationMismatch)
			return
		}
		certified = c
	}
	// A reserved flag read as absent is written back unchanged.
	if h.Certified() != certified {
		h.CertificationFlag = CertificationAbsent
		if certified {
			h.CertificationFlag = CertificationPresent
		}
	}
	h.RepresentationLength = uint32(total)
	h.RepresentationCount = uint16(len(rec.Representations))

	h.Encode(w)
	for _, rep := range rec.Representations {
		rep.Encode(w)
	}
}

// DecodeRecord reads a general header and its single representation using
// decode for the modality-specific part.
func DecodeRecord[R Representation](
	r *codec.Reader,
	decode func(r *codec.Reader, certified bool, opts DecodeOptions) R,
	opts DecodeOptions,
) (*Record[R], error) {
	log := opts.Log()

	rec := &Record[R]{}
	rec.Header.Decode(r)
	if r.Err != nil {
		return nil, errors.Wrap(r.Err, "decode general header")
	}
	if rec.Header.shortLength {
		log.Debug("general header length shorter than the header itself, using 0")
	}
	if rec.Header.RepresentationCount != 1 {
		return nil, &UnsupportedRepresentationCountError{Count: rec.Header.RepresentationCount}
	}
	if f := rec.Header.CertificationFlag; f > CertificationPresent {
		log.Debug("treating unknown certification flag as absent", "flag", f)
	}
	if rec.Header.Version != Version020 {
		log.Debug("unexpected record version", "version", rec.Header.Version)
	}

	rep := decode(r, rec.Header.Certified(), opts)
	if r.Err != nil {
		return nil, errors.Wrap(r.Err, "decode representation")
	}
	rec.Representations = []R{rep}

	if got := rep.Length(); uint64(rec.Header.RepresentationLength) != got {
		log.Debug("general header length differs from representation",
			"declared", rec.Header.RepresentationLength, "computed", got)
	}
	return rec, nil
}
