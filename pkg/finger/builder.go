package finger

import (
	"math"
	"time"

	"github.com/hengadev/errsx"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// Builder assembles a finger record field by field. Build checks that the
// result can be encoded.
type Builder struct {
	header        RepresentationHeader
	body          RepresentationBody
	modalityCount uint8
}

// NewBuilder returns a Builder for a single 500 ppi, 8-bit, live-scan plain
// image captured now.
func NewBuilder() *Builder {
	b := &Builder{modalityCount: 1}
	b.header.CaptureTime = bdir.CaptureDateTimeFrom(time.Now())
	b.header.ScaleUnits = ScaleUnitsPPI
	b.header.ScanSamplingRateHorizontal = 500
	b.header.ScanSamplingRateVertical = 500
	b.header.ImageSamplingRateHorizontal = 500
	b.header.ImageSamplingRateVertical = 500
	b.header.BitDepth = 8
	b.header.Compression = CompressionJPEG2000Lossless
	b.header.Impression = ImpressionLiveScanPlain
	return b
}

func (b *Builder) WithCaptureTime(t time.Time) *Builder {
	b.header.CaptureTime = bdir.CaptureDateTimeFrom(t)
	return b
}

// WithCaptureDateTime sets the raw timestamp, for values such as
// bdir.UnreportedCaptureDateTime that have no time.Time form.
func (b *Builder) WithCaptureDateTime(d bdir.CaptureDateTime) *Builder {
	b.header.CaptureTime = d
	return b
}

func (b *Builder) WithDevice(technology uint8, vendor, typ uint16) *Builder {
	b.header.DeviceTechnology = technology
	b.header.DeviceVendor = vendor
	b.header.DeviceType = typ
	return b
}

func (b *Builder) WithQuality(blocks ...bdir.QualityBlock) *Builder {
	b.header.QualityBlocks = append(b.header.QualityBlocks, blocks...)
	return b
}

// WithCertification adds a certification section, which also sets the
// general header's certification flag. It may be called with no blocks.
func (b *Builder) WithCertification(blocks ...bdir.CertificationBlock) *Builder {
	if b.header.Certification == nil {
		b.header.Certification = &bdir.CertificationSection{}
	}
	b.header.Certification.Blocks = append(b.header.Certification.Blocks, blocks...)
	return b
}

func (b *Builder) WithPosition(p Position) *Builder {
	b.header.Position = p
	return b
}

func (b *Builder) WithRepresentationNumber(n uint8) *Builder {
	b.header.RepresentationNumber = n
	return b
}

// WithResolution sets scale units and all four sampling rates to one value.
func (b *Builder) WithResolution(units ScaleUnits, rate uint16) *Builder {
	b.header.ScaleUnits = units
	b.header.ScanSamplingRateHorizontal = rate
	b.header.ScanSamplingRateVertical = rate
	b.header.ImageSamplingRateHorizontal = rate
	b.header.ImageSamplingRateVertical = rate
	return b
}

func (b *Builder) WithBitDepth(depth uint8) *Builder {
	b.header.BitDepth = depth
	return b
}

func (b *Builder) WithCompression(c CompressionType) *Builder {
	b.header.Compression = c
	return b
}

func (b *Builder) WithImpression(i ImpressionType) *Builder {
	b.header.Impression = i
	return b
}

func (b *Builder) WithDimensions(width, height uint16) *Builder {
	b.header.HorizontalLineLength = width
	b.header.VerticalLineLength = height
	return b
}

func (b *Builder) WithImage(data []byte) *Builder {
	b.body.Image.Data = data
	return b
}

func (b *Builder) WithSegmentation(seg bdir.SegmentationBlock) *Builder {
	b.body.Extended.Segmentation = &seg
	return b
}

func (b *Builder) WithAnnotation(entries ...bdir.AnnotationData) *Builder {
	b.body.Extended.Annotation = &bdir.AnnotationBlock{Entries: entries}
	return b
}

func (b *Builder) WithComment(tag uint16, data []byte) *Builder {
	b.body.Extended.Comments = append(b.body.Extended.Comments, bdir.CommentBlock{Tag: tag, Data: data})
	return b
}

func (b *Builder) WithModalityCount(n uint8) *Builder {
	b.modalityCount = n
	return b
}

// Build returns the record, or an errsx.Map keyed by offending field.
func (b *Builder) Build() (*Record, error) {
	var errs errsx.Map
	bdir.CheckCapture(&errs, &b.header.CaptureInfo)
	bdir.CheckExtendedBlocks(&errs, &b.body.Extended)
	if uint64(len(b.body.Image.Data)) > math.MaxUint32-4 {
		errs.Set("image", bdir.Invalid("image size", len(b.body.Image.Data)))
	}
	if err := errs.AsError(); err != nil {
		return nil, err
	}

	body := RepresentationBody{
		Image:    b.body.Image.Clone(),
		Extended: b.body.Extended.Clone(),
	}
	header := b.header
	header.CaptureInfo = b.header.CaptureInfo.Clone()
	header.BodyLength = uint32(body.Length())

	rep := &Representation{Header: header, Body: &body}
	flag := bdir.CertificationAbsent
	if rep.Certified() {
		flag = bdir.CertificationPresent
	}
	return &Record{
		Header: bdir.GeneralHeader{
			FormatIdentifier:     bdir.FormatFinger,
			Version:              bdir.Version020,
			RepresentationLength: uint32(rep.Length()),
			RepresentationCount:  1,
			CertificationFlag:    flag,
			ModalityCount:        b.modalityCount,
		},
		Representations: []*Representation{rep},
	}, nil
}
