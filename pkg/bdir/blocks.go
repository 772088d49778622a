package bdir

import (
	"slices"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// QualityBlockLength is the wire size of one quality block.
const QualityBlockLength = 5

// QualityScoreUnreported marks a quality block whose score was not computed.
const QualityScoreUnreported uint8 = 255

// QualityBlock reports the output of one quality algorithm.
type QualityBlock struct {
	Score             uint8
	AlgorithmVendorID uint16
	AlgorithmID       uint16
}

func (q *QualityBlock) Length() uint64 {
	return QualityBlockLength
}

func (q *QualityBlock) Decode(r *codec.Reader) {
	q.Score = r.ReadU8()
	q.AlgorithmVendorID = r.ReadU16()
	q.AlgorithmID = r.ReadU16()
}

func (q *QualityBlock) Encode(w *codec.Writer) {
	w.WriteU8(q.Score)
	w.WriteU16(q.AlgorithmVendorID)
	w.WriteU16(q.AlgorithmID)
}

// CertificationBlockLength is the wire size of one certification block.
const CertificationBlockLength = 3

// Certification scheme identifiers.
const (
	CertificationSchemeUnknown   uint8 = 0
	CertificationSchemeAppendixF uint8 = 1
	CertificationSchemePIV       uint8 = 2
)

// CertificationBlock names an authority and the scheme it certified against.
type CertificationBlock struct {
	AuthorityID uint16
	SchemeID    uint8
}

func (c *CertificationBlock) Length() uint64 {
	return CertificationBlockLength
}

func (c *CertificationBlock) Decode(r *codec.Reader) {
	c.AuthorityID = r.ReadU16()
	c.SchemeID = r.ReadU8()
}

func (c *CertificationBlock) Encode(w *codec.Writer) {
	w.WriteU16(c.AuthorityID)
	w.WriteU8(c.SchemeID)
}

// CertificationSection is the count-prefixed list of certification blocks.
// Its presence in a representation header is governed by the general
// header's certification flag, so a nil section and an empty section encode
// differently.
type CertificationSection struct {
	Blocks []CertificationBlock
}

// Clone returns a copy that shares no memory with s. A nil section stays nil.
func (s *CertificationSection) Clone() *CertificationSection {
	if s == nil {
		return nil
	}
	return &CertificationSection{Blocks: slices.Clone(s.Blocks)}
}

func (s *CertificationSection) Length() uint64 {
	if s == nil {
		return 0
	}
	return 1 + uint64(len(s.Blocks))*CertificationBlockLength
}

func (s *CertificationSection) Encode(w *codec.Writer) {
	if s == nil {
		return
	}
	w.WriteCountU8(len(s.Blocks))
	for i := range s.Blocks {
		s.Blocks[i].Encode(w)
	}
}

// ImageData is the length-prefixed compressed image.
type ImageData struct {
	Data []byte
}

func (d *ImageData) Clone() ImageData {
	return ImageData{Data: slices.Clone(d.Data)}
}

func (d *ImageData) Length() uint64 {
	return 4 + uint64(len(d.Data))
}

func (d *ImageData) Decode(r *codec.Reader) {
	n := r.ReadU32()
	d.Data = r.ReadBytes(int(n))
}

func (d *ImageData) Encode(w *codec.Writer) {
	w.WriteLengthU32(uint64(len(d.Data)))
	w.WriteBytes(d.Data)
}
