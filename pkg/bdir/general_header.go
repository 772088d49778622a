package bdir

import "github.com/ssargent/bdirkit/pkg/codec"

// GeneralHeaderLength is the fixed size of the general header.
const GeneralHeaderLength = 16

// Certification flag values.
const (
	CertificationAbsent  uint8 = 0
	CertificationPresent uint8 = 1
)

// GeneralHeader is the fixed 16-byte envelope of a BDIR.
type GeneralHeader struct {
	FormatIdentifier uint32
	Version          uint32

	// RepresentationLength counts the bytes following the general header.
	// The wire value includes the header's own 16 bytes.
	RepresentationLength uint32

	RepresentationCount uint16
	CertificationFlag   uint8
	ModalityCount       uint8 // fingers or eyes present

	shortLength bool // stored length was below GeneralHeaderLength
}

// Certified reports whether representation headers carry certification
// blocks.
func (h *GeneralHeader) Certified() bool {
	return h.CertificationFlag == CertificationPresent
}

func (h *GeneralHeader) Length() uint64 {
	return GeneralHeaderLength
}

func (h *GeneralHeader) Decode(r *codec.Reader) {
	h.FormatIdentifier = r.ReadU32()
	h.Version = r.ReadU32()
	total := r.ReadU32()
	h.RepresentationCount = r.ReadU16()
	h.CertificationFlag = r.ReadU8()
	h.ModalityCount = r.ReadU8()

	h.shortLength = total < GeneralHeaderLength
	if h.shortLength {
		h.RepresentationLength = 0
	} else {
		h.RepresentationLength = total - GeneralHeaderLength
	}
}

func (h *GeneralHeader) Encode(w *codec.Writer) {
	w.WriteU32(h.FormatIdentifier)
	w.WriteU32(h.Version)
	w.WriteLengthU32(uint64(h.RepresentationLength) + GeneralHeaderLength)
	w.WriteU16(h.RepresentationCount)
	w.WriteU8(h.CertificationFlag)
	w.WriteU8(h.ModalityCount)
}
