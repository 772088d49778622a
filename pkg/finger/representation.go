package finger

import (
	"log/slog"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/codec"
)

// headerFixedLength covers the finger fields that follow the capture prefix.
const headerFixedLength = 18

// RepresentationHeader is the capture prefix plus the finger image
// description.
type RepresentationHeader struct {
	bdir.CaptureInfo

	Position             Position
	RepresentationNumber uint8
	ScaleUnits           ScaleUnits

	ScanSamplingRateHorizontal  uint16
	ScanSamplingRateVertical    uint16
	ImageSamplingRateHorizontal uint16
	ImageSamplingRateVertical   uint16

	BitDepth    uint8
	Compression CompressionType
	Impression  ImpressionType

	HorizontalLineLength uint16
	VerticalLineLength   uint16
}

func (h *RepresentationHeader) Length() uint64 {
	return h.CaptureLength() + headerFixedLength
}

// Decode reads the header. The certification section is present only when
// the general header says so.
func (h *RepresentationHeader) Decode(r *codec.Reader, certified bool, opts bdir.DecodeOptions) {
	declared := h.DecodeCapture(r, certified, opts)
	h.Position = Position(r.ReadU8())
	h.RepresentationNumber = r.ReadU8()
	h.ScaleUnits = ScaleUnits(r.ReadU8())
	h.ScanSamplingRateHorizontal = r.ReadU16()
	h.ScanSamplingRateVertical = r.ReadU16()
	h.ImageSamplingRateHorizontal = r.ReadU16()
	h.ImageSamplingRateVertical = r.ReadU16()
	h.BitDepth = r.ReadU8()
	h.Compression = CompressionType(r.ReadU8())
	h.Impression = ImpressionType(r.ReadU8())
	h.HorizontalLineLength = r.ReadU16()
	h.VerticalLineLength = r.ReadU16()
	if r.Err != nil {
		return
	}

	log := opts.Log()
	if !h.ResolveBodyLength(declared, h.Length()) {
		log.Debug("representation length shorter than its header",
			"declared", declared, "header", h.Length())
	}
	h.logUnknown(log)
}

func (h *RepresentationHeader) logUnknown(log *slog.Logger) {
	if !h.Position.Known() {
		log.Debug("unknown finger position", "code", uint8(h.Position))
	}
	if !h.Compression.Known() {
		log.Debug("unknown compression type", "code", uint8(h.Compression))
	}
	if !h.Impression.Known() {
		log.Debug("unknown impression type", "code", uint8(h.Impression))
	}
	if !h.ScaleUnits.Known() {
		log.Debug("unknown scale units", "code", uint8(h.ScaleUnits))
	}
	if !IsKnownDeviceTechnology(h.DeviceTechnology) {
		log.Debug("unknown device technology", "code", h.DeviceTechnology)
	}
}

// Encode writes the header declaring BodyLength bytes of body.
func (h *RepresentationHeader) Encode(w *codec.Writer) {
	h.encode(w, uint64(h.BodyLength))
}

func (h *RepresentationHeader) encode(w *codec.Writer, bodyLength uint64) {
	h.EncodeCapture(w, h.Length()+bodyLength)
	w.WriteU8(uint8(h.Position))
	w.WriteU8(h.RepresentationNumber)
	w.WriteU8(uint8(h.ScaleUnits))
	w.WriteU16(h.ScanSamplingRateHorizontal)
	w.WriteU16(h.ScanSamplingRateVertical)
	w.WriteU16(h.ImageSamplingRateHorizontal)
	w.WriteU16(h.ImageSamplingRateVertical)
	w.WriteU8(h.BitDepth)
	w.WriteU8(uint8(h.Compression))
	w.WriteU8(uint8(h.Impression))
	w.WriteU16(h.HorizontalLineLength)
	w.WriteU16(h.VerticalLineLength)
}

// RepresentationBody is the image followed by optional extended data.
type RepresentationBody struct {
	Image    bdir.ImageData
	Extended bdir.ExtendedBlocks

	// TrailerWarning is set when the extended data could not be fully
	// parsed. Extended then holds the blocks read before the failure.
	TrailerWarning *bdir.MalformedTrailerWarning
}

func (b *RepresentationBody) Length() uint64 {
	return b.Image.Length() + b.Extended.Length()
}

// Decode reads the image and every extended block up to the end of r.
func (b *RepresentationBody) Decode(r *codec.Reader, opts bdir.DecodeOptions) {
	b.Image.Decode(r)
	if r.Err != nil {
		return
	}
	ext, n, warn := bdir.DecodeExtendedBlocks(r.Rest(), r.Offset(), opts.Log())
	r.Skip(n)
	b.Extended = ext
	b.TrailerWarning = warn
}

func (b *RepresentationBody) Encode(w *codec.Writer) {
	b.Image.Encode(w)
	b.Extended.Encode(w)
}

// Representation is one finger image with its header.
type Representation struct {
	Header RepresentationHeader

	// Body is nil when the record was decoded header-only.
	Body *RepresentationBody
}

// Certified reports whether the header carries a certification section.
func (p *Representation) Certified() bool {
	return p.Header.Certification != nil
}

func (p *Representation) Length() uint64 {
	if p.Body == nil {
		return p.Header.Length() + uint64(p.Header.BodyLength)
	}
	return p.Header.Length() + p.Body.Length()
}

// Encode writes the header with a body length recomputed from Body.
func (p *Representation) Encode(w *codec.Writer) {
	if p.Body == nil {
		w.Fail(bdir.ErrHeaderOnly)
		return
	}
	p.Header.encode(w, p.Body.Length())
	p.Body.Encode(w)
}

func decodeRepresentation(r *codec.Reader, certified bool, opts bdir.DecodeOptions) *Representation {
	p := &Representation{}
	p.Header.Decode(r, certified, opts)
	if r.Err != nil {
		return p
	}
	if opts.HeaderOnly {
		r.Skip(min(int(p.Header.BodyLength), r.Len()))
		return p
	}
	p.Body = &RepresentationBody{}
	p.Body.Decode(r, opts)
	return p
}
