package iris

import (
	"math"
	"time"

	"github.com/hengadev/errsx"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// Builder assembles an iris record field by field.
type Builder struct {
	header        RepresentationHeader
	body          RepresentationBody
	modalityCount uint8
}

// NewBuilder returns a Builder for one cropped, 8-bit monochrome JPEG2000
// image captured now, with range and roll left undefined.
func NewBuilder() *Builder {
	b := &Builder{modalityCount: 1}
	b.header.CaptureTime = bdir.CaptureDateTimeFrom(time.Now())
	b.header.ImageType = ImageTypeCropped
	b.header.ImageFormat = ImageFormatMonoJPEG2000
	b.header.ImageProperties = NewImageProperties(OrientationBase, OrientationBase, CompressionHistoryLosslessOrNone)
	b.header.BitDepth = 8
	b.header.Range = RangeUnassigned
	b.header.RollAngle = RollAngleUndefined
	b.header.RollAngleUncertainty = RollUncertaintyUndefined
	return b
}

func (b *Builder) WithCaptureTime(t time.Time) *Builder {
	b.header.CaptureTime = bdir.CaptureDateTimeFrom(t)
	return b
}

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

// WithCertification adds a certification section. It may be called with no
// blocks.
func (b *Builder) WithCertification(blocks ...bdir.CertificationBlock) *Builder {
	if b.header.Certification == nil {
		b.header.Certification = &bdir.CertificationSection{}
	}
	b.header.Certification.Blocks = append(b.header.Certification.Blocks, blocks...)
	return b
}

func (b *Builder) WithRepresentationNumber(n uint8) *Builder {
	b.header.RepresentationNumber = n
	return b
}

func (b *Builder) WithEyeLabel(e EyeLabel) *Builder {
	b.header.EyeLabel = e
	return b
}

func (b *Builder) WithImageType(t ImageType) *Builder {
	b.header.ImageType = t
	return b
}

func (b *Builder) WithImageFormat(f ImageFormat) *Builder {
	b.header.ImageFormat = f
	return b
}

func (b *Builder) WithImageProperties(p ImageProperties) *Builder {
	b.header.ImageProperties = p
	return b
}

func (b *Builder) WithDimensions(width, height uint16) *Builder {
	b.header.Width = width
	b.header.Height = height
	return b
}

func (b *Builder) WithBitDepth(depth uint8) *Builder {
	b.header.BitDepth = depth
	return b
}

func (b *Builder) WithRange(r uint16) *Builder {
	b.header.Range = r
	return b
}

func (b *Builder) WithRoll(angle, uncertainty uint16) *Builder {
	b.header.RollAngle = angle
	b.header.RollAngleUncertainty = uncertainty
	return b
}

// WithIrisCenter sets the bounding range of the iris centre.
func (b *Builder) WithIrisCenter(minX, maxX, minY, maxY uint16) *Builder {
	b.header.IrisCenterSmallestX = minX
	b.header.IrisCenterLargestX = maxX
	b.header.IrisCenterSmallestY = minY
	b.header.IrisCenterLargestY = maxY
	return b
}

func (b *Builder) WithIrisDiameter(smallest, largest uint16) *Builder {
	b.header.IrisDiameterSmallest = smallest
	b.header.IrisDiameterLargest = largest
	return b
}

func (b *Builder) WithImage(data []byte) *Builder {
	b.body.Image.Data = data
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
	if uint64(len(b.body.Image.Data)) > math.MaxUint32-4 {
		errs.Set("image", bdir.Invalid("image size", len(b.body.Image.Data)))
	}
	if err := errs.AsError(); err != nil {
		return nil, err
	}

	body := RepresentationBody{Image: b.body.Image.Clone()}
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
			FormatIdentifier:     bdir.FormatIris,
			Version:              bdir.Version020,
			RepresentationLength: uint32(rep.Length()),
			RepresentationCount:  1,
			CertificationFlag:    flag,
			ModalityCount:        b.modalityCount,
		},
		Representations: []*Representation{rep},
	}, nil
}
