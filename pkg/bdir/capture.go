package bdir

import (
	"slices"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// captureFixedLength covers representation length, capture time, device
// technology, vendor, type and the quality block count.
const captureFixedLength = 4 + CaptureDateTimeLength + 1 + 2 + 2 + 1

// CaptureInfo is the prefix shared by finger and iris representation
// headers. Modality packages embed it and append their own fields.
type CaptureInfo struct {
	// BodyLength is the size of the representation body. Decoding derives
	// it from the declared representation length; encoding a representation
	// recomputes it from the body.
	BodyLength uint32

	CaptureTime      CaptureDateTime
	DeviceTechnology uint8
	DeviceVendor     uint16
	DeviceType       uint16
	QualityBlocks    []QualityBlock

	// Certification is nil when the general header's certification flag is
	// not set.
	Certification *CertificationSection

	// Counts of blocks skipped by a header-only decode.
	skippedQuality       int
	skippedCertification int
}

// Clone returns a copy of c whose quality blocks and certification section
// are not shared with c.
func (c *CaptureInfo) Clone() CaptureInfo {
	out := *c
	out.QualityBlocks = slices.Clone(c.QualityBlocks)
	out.Certification = c.Certification.Clone()
	return out
}

// QualityBlockCount returns the number of quality blocks, including those
// skipped by a header-only decode.
func (c *CaptureInfo) QualityBlockCount() int {
	if c.skippedQuality > 0 {
		return c.skippedQuality
	}
	return len(c.QualityBlocks)
}

// CertificationBlockCount returns the number of certification blocks,
// including those skipped by a header-only decode.
func (c *CaptureInfo) CertificationBlockCount() int {
	if c.Certification == nil {
		return 0
	}
	if c.skippedCertification > 0 {
		return c.skippedCertification
	}
	return len(c.Certification.Blocks)
}

// Skipped reports whether quality or certification blocks were skipped.
func (c *CaptureInfo) Skipped() bool {
	return c.skippedQuality > 0 || c.skippedCertification > 0
}

// CaptureLength is the encoded size of the shared prefix.
func (c *CaptureInfo) CaptureLength() uint64 {
	n := uint64(captureFixedLength) + uint64(c.QualityBlockCount())*QualityBlockLength
	if c.Certification != nil {
		n += 1 + uint64(c.CertificationBlockCount())*CertificationBlockLength
	}
	return n
}

// DecodeCapture reads the shared prefix and returns the declared
// representation length. The certification section is read only when
// certified is set.
func (c *CaptureInfo) DecodeCapture(r *codec.Reader, certified bool, opts DecodeOptions) uint32 {
	declared := r.ReadU32()
	c.CaptureTime.Decode(r)
	c.DeviceTechnology = r.ReadU8()
	c.DeviceVendor = r.ReadU16()
	c.DeviceType = r.ReadU16()

	nq := int(r.ReadU8())
	switch {
	case opts.HeaderOnly:
		r.Skip(nq * QualityBlockLength)
		c.skippedQuality = nq
	case nq > 0:
		c.QualityBlocks = make([]QualityBlock, nq)
		for i := range c.QualityBlocks {
			c.QualityBlocks[i].Decode(r)
		}
	}

	if !certified {
		return declared
	}
	c.Certification = &CertificationSection{}
	nc := int(r.ReadU8())
	switch {
	case opts.HeaderOnly:
		r.Skip(nc * CertificationBlockLength)
		c.skippedCertification = nc
	case nc > 0:
		c.Certification.Blocks = make([]CertificationBlock, nc)
		for i := range c.Certification.Blocks {
			c.Certification.Blocks[i].Decode(r)
		}
	}
	return declared
}

// ResolveBodyLength sets BodyLength from the declared representation length
// and the decoded header length. ok is false when the declared length is
// shorter than the header, in which case BodyLength is zero.
func (c *CaptureInfo) ResolveBodyLength(declared uint32, headerLength uint64) (ok bool) {
	if uint64(declared) < headerLength {
		c.BodyLength = 0
		return false
	}
	c.BodyLength = uint32(uint64(declared) - headerLength)
	return true
}

// EncodeCapture writes the shared prefix with the given representation
// length. Headers with skipped blocks cannot be written.
func (c *CaptureInfo) EncodeCapture(w *codec.Writer, representationLength uint64) {
	if c.Skipped() {
		w.Fail(ErrHeaderOnly)
		return
	}
	w.WriteLengthU32(representationLength)
	c.CaptureTime.Encode(w)
	w.WriteU8(c.DeviceTechnology)
	w.WriteU16(c.DeviceVendor)
	w.WriteU16(c.DeviceType)
	w.WriteCountU8(len(c.QualityBlocks))
	for i := range c.QualityBlocks {
		c.QualityBlocks[i].Encode(w)
	}
	c.Certification.Encode(w)
}
