package iris

import (
	"log/slog"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/codec"
)

// headerFixedLength covers the iris fields that follow the capture prefix.
const headerFixedLength = 28

// RepresentationHeader is the capture prefix plus the iris image
// description.
type RepresentationHeader struct {
	bdir.CaptureInfo

	RepresentationNumber uint8
	EyeLabel             EyeLabel
	ImageType            ImageType
	ImageFormat          ImageFormat
	ImageProperties      ImageProperties

	Width    uint16
	Height   uint16
	BitDepth uint8

	Range                uint16
	RollAngle            uint16
	RollAngleUncertainty uint16

	IrisCenterSmallestX  uint16
	IrisCenterLargestX   uint16
	IrisCenterSmallestY  uint16
	IrisCenterLargestY   uint16
	IrisDiameterSmallest uint16
	IrisDiameterLargest  uint16
}

func (h *RepresentationHeader) Length() uint64 {
	return h.CaptureLength() + headerFixedLength
}

// Decode reads the header. The certification section is present only when
// the general header says so.
func (h *RepresentationHeader) Decode(r *codec.Reader, certified bool, opts bdir.DecodeOptions) {
	declared := h.DecodeCapture(r, certified, opts)
	h.RepresentationNumber = r.ReadU8()
	h.EyeLabel = EyeLabel(r.ReadU8())
	h.ImageType = ImageType(r.ReadU8())
	h.ImageFormat = ImageFormat(r.ReadU8())
	h.ImageProperties = ImageProperties(r.ReadU8())
	h.Width = r.ReadU16()
	h.Height = r.ReadU16()
	h.BitDepth = r.ReadU8()
	h.Range = r.ReadU16()
	h.RollAngle = r.ReadU16()
	h.RollAngleUncertainty = r.ReadU16()
	h.IrisCenterSmallestX = r.ReadU16()
	h.IrisCenterLargestX = r.ReadU16()
	h.IrisCenterSmallestY = r.ReadU16()
	h.IrisCenterLargestY = r.ReadU16()
	h.IrisDiameterSmallest = r.ReadU16()
	h.IrisDiameterLargest = r.ReadU16()
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
	if !h.EyeLabel.Known() {
		log.Debug("unknown eye label", "code", uint8(h.EyeLabel))
	}
	if !h.ImageType.Known() {
		log.Debug("unknown iris image type", "code", uint8(h.ImageType))
	}
	if !h.ImageFormat.Known() {
		log.Debug("unknown iris image format", "code", uint8(h.ImageFormat))
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
	w.WriteU8(h.RepresentationNumber)
	w.WriteU8(uint8(h.EyeLabel))
	w.WriteU8(uint8(h.ImageType))
	w.WriteU8(uint8(h.ImageFormat))
	w.WriteU8(uint8(h.ImageProperties))
	w.WriteU16(h.Width)
	w.WriteU16(h.Height)
	w.WriteU8(h.BitDepth)
	w.WriteU16(h.Range)
	w.WriteU16(h.RollAngle)
	w.WriteU16(h.RollAngleUncertainty)
	w.WriteU16(h.IrisCenterSmallestX)
	w.WriteU16(h.IrisCenterLargestX)
	w.WriteU16(h.IrisCenterSmallestY)
	w.WriteU16(h.IrisCenterLargestY)
	w.WriteU16(h.IrisDiameterSmallest)
	w.WriteU16(h.IrisDiameterLargest)
}

// RepresentationBody is the iris image. Iris records carry no extended
// data blocks; bytes after the image are ignored.
type RepresentationBody struct {
	Image bdir.ImageData
}

func (b *RepresentationBody) Length() uint64 {
	return b.Image.Length()
}

func (b *RepresentationBody) Decode(r *codec.Reader) {
	b.Image.Decode(r)
}

func (b *RepresentationBody) Encode(w *codec.Writer) {
	b.Image.Encode(w)
}

// Representation is one iris image with its header.
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
	p.Body.Decode(r)
	if n := r.Len(); n > 0 && r.Err == nil {
		opts.Log().Debug("ignoring bytes after iris image", "bytes", n)
	}
	return p
}
