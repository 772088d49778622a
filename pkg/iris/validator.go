package iris

import (
	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// ErrNoRepresentation is returned when validating a record without a
// representation.
var ErrNoRepresentation = errors.New("record has no representation")

// Validator holds the iris range and policy predicates.
type Validator struct{}

// DefaultValidator is the shared Validator.
var DefaultValidator = Validator{}

// IsValidEyeLabel accepts an undefined eye only for authentication.
func (Validator) IsValidEyeLabel(purpose bdir.Purpose, e EyeLabel) bool {
	switch purpose {
	case bdir.PurposeAuth:
		return e.Known()
	case bdir.PurposeRegistration:
		return e == EyeRight || e == EyeLeft
	}
	return false
}

// IsValidImageType expects cropped and masked images for authentication and
// cropped images for registration.
func (Validator) IsValidImageType(purpose bdir.Purpose, t ImageType) bool {
	switch purpose {
	case bdir.PurposeAuth:
		return t == ImageTypeCroppedAndMasked
	case bdir.PurposeRegistration:
		return t == ImageTypeCropped
	}
	return false
}

// IsValidImageFormat accepts monochrome JPEG2000 only.
func (Validator) IsValidImageFormat(f ImageFormat) bool {
	return f == ImageFormatMonoJPEG2000
}

// IsValidCompressionHistory expects lossy compression for authentication
// and lossless or none for registration.
func (Validator) IsValidCompressionHistory(purpose bdir.Purpose, c CompressionHistory) bool {
	switch purpose {
	case bdir.PurposeAuth:
		return c == CompressionHistoryLossy
	case bdir.PurposeRegistration:
		return c == CompressionHistoryLosslessOrNone
	}
	return false
}

func (Validator) IsValidOrientation(o Orientation) bool {
	return o.Known()
}

func (Validator) IsValidDimension(n uint16) bool {
	return n != 0
}

func (Validator) IsValidBitDepth(depth uint8) bool {
	return depth == 8
}

func (Validator) IsValidDeviceTechnology(code uint8) bool {
	return IsKnownDeviceTechnology(code)
}

// Validate checks every field of the first representation for purpose. The
// returned error is an errsx.Map keyed by field.
func (v Validator) Validate(rec *Record, purpose bdir.Purpose) error {
	if rec == nil || len(rec.Representations) == 0 || rec.Representations[0] == nil {
		return ErrNoRepresentation
	}

	var errs errsx.Map
	bdir.ValidateGeneralHeader(&errs, &rec.Header, bdir.FormatIris)

	h := &rec.Representations[0].Header
	bdir.ValidateCapture(&errs, &h.CaptureInfo)

	if !v.IsValidDeviceTechnology(h.DeviceTechnology) {
		errs.Set("device_technology", bdir.Invalid("device technology", h.DeviceTechnology))
	}
	if !v.IsValidEyeLabel(purpose, h.EyeLabel) {
		errs.Set("eye_label", bdir.Invalid("eye label", h.EyeLabel))
	}
	if !v.IsValidImageType(purpose, h.ImageType) {
		errs.Set("image_type", bdir.Invalid("image type", h.ImageType))
	}
	if !v.IsValidImageFormat(h.ImageFormat) {
		errs.Set("image_format", bdir.Invalid("image format", h.ImageFormat))
	}
	props := h.ImageProperties
	if !v.IsValidOrientation(props.HorizontalOrientation()) {
		errs.Set("horizontal_orientation", bdir.Invalid("horizontal orientation", props.HorizontalOrientation()))
	}
	if !v.IsValidOrientation(props.VerticalOrientation()) {
		errs.Set("vertical_orientation", bdir.Invalid("vertical orientation", props.VerticalOrientation()))
	}
	if !v.IsValidCompressionHistory(purpose, props.CompressionHistory()) {
		errs.Set("compression_history", bdir.Invalid("compression history", props.CompressionHistory()))
	}
	if !v.IsValidDimension(h.Width) {
		errs.Set("width", bdir.Invalid("width", h.Width))
	}
	if !v.IsValidDimension(h.Height) {
		errs.Set("height", bdir.Invalid("height", h.Height))
	}
	if !v.IsValidBitDepth(h.BitDepth) {
		errs.Set("bit_depth", bdir.Invalid("bit depth", h.BitDepth))
	}
	if h.IrisCenterSmallestX > h.IrisCenterLargestX || h.IrisCenterSmallestY > h.IrisCenterLargestY {
		errs.Set("iris_center", bdir.Invalid("iris centre range", h.IrisCenterSmallestX))
	}
	if h.IrisDiameterSmallest > h.IrisDiameterLargest {
		errs.Set("iris_diameter", bdir.Invalid("iris diameter range", h.IrisDiameterSmallest))
	}

	if body := rec.Representations[0].Body; body != nil && len(body.Image.Data) == 0 {
		errs.Set("image", bdir.Invalid("image size", 0))
	}
	return errs.AsError()
}
