package finger

import (
	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// ErrNoRepresentation is returned when validating a record without a
// representation.
var ErrNoRepresentation = errors.New("record has no representation")

// Validator holds the finger range and policy predicates. It is stateless;
// use DefaultValidator.
type Validator struct{}

// DefaultValidator is the shared Validator.
var DefaultValidator = Validator{}

// IsValidFingerPosition accepts single fingers for both purposes and
// UNKNOWN only for authentication.
func (Validator) IsValidFingerPosition(purpose bdir.Purpose, p Position) bool {
	switch purpose {
	case bdir.PurposeAuth:
		return p <= PositionLeftLittle
	case bdir.PurposeRegistration:
		return p >= PositionRightThumb && p <= PositionLeftLittle
	}
	return false
}

// IsValidImageCompressionType accepts JPEG2000 lossy or WSQ for
// authentication and JPEG2000 lossless for registration.
func (Validator) IsValidImageCompressionType(purpose bdir.Purpose, c CompressionType) bool {
	switch purpose {
	case bdir.PurposeAuth:
		return c == CompressionJPEG2000Lossy || c == CompressionWSQ
	case bdir.PurposeRegistration:
		return c == CompressionJPEG2000Lossless
	}
	return false
}

// IsValidImpression accepts live and non-live plain or rolled captures and
// swipes for authentication, and live plain or rolled for registration.
func (Validator) IsValidImpression(purpose bdir.Purpose, i ImpressionType) bool {
	switch purpose {
	case bdir.PurposeAuth:
		switch i {
		case ImpressionLiveScanPlain, ImpressionLiveScanRolled,
			ImpressionNonLiveScanPlain, ImpressionNonLiveScanRolled,
			ImpressionLiveScanSwipe, ImpressionLiveScanVerticalSwipe:
			return true
		}
	case bdir.PurposeRegistration:
		return i == ImpressionLiveScanPlain || i == ImpressionLiveScanRolled
	}
	return false
}

func (Validator) IsValidScaleUnits(s ScaleUnits) bool {
	return s.Known()
}

func (Validator) IsValidSamplingRate(rate uint16) bool {
	return rate != 0
}

func (Validator) IsValidBitDepth(depth uint8) bool {
	return depth >= 1 && depth <= 16
}

func (Validator) IsValidLineLength(n uint16) bool {
	return n != 0
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
	bdir.ValidateGeneralHeader(&errs, &rec.Header, bdir.FormatFinger)

	h := &rec.Representations[0].Header
	bdir.ValidateCapture(&errs, &h.CaptureInfo)

	if !v.IsValidDeviceTechnology(h.DeviceTechnology) {
		errs.Set("device_technology", bdir.Invalid("device technology", h.DeviceTechnology))
	}
	if !v.IsValidFingerPosition(purpose, h.Position) {
		errs.Set("position", bdir.Invalid("finger position", h.Position))
	}
	if !v.IsValidScaleUnits(h.ScaleUnits) {
		errs.Set("scale_units", bdir.Invalid("scale units", h.ScaleUnits))
	}
	rates := map[string]uint16{
		"scan_sampling_rate_horizontal":  h.ScanSamplingRateHorizontal,
		"scan_sampling_rate_vertical":    h.ScanSamplingRateVertical,
		"image_sampling_rate_horizontal": h.ImageSamplingRateHorizontal,
		"image_sampling_rate_vertical":   h.ImageSamplingRateVertical,
	}
	for field, rate := range rates {
		if !v.IsValidSamplingRate(rate) {
			errs.Set(field, bdir.Invalid("sampling rate", rate))
		}
	}
	if !v.IsValidBitDepth(h.BitDepth) {
		errs.Set("bit_depth", bdir.Invalid("bit depth", h.BitDepth))
	}
	if !v.IsValidImageCompressionType(purpose, h.Compression) {
		errs.Set("compression", bdir.Invalid("compression type", h.Compression))
	}
	if !v.IsValidImpression(purpose, h.Impression) {
		errs.Set("impression", bdir.Invalid("impression type", h.Impression))
	}
	if !v.IsValidLineLength(h.HorizontalLineLength) {
		errs.Set("horizontal_line_length", bdir.Invalid("horizontal line length", h.HorizontalLineLength))
	}
	if !v.IsValidLineLength(h.VerticalLineLength) {
		errs.Set("vertical_line_length", bdir.Invalid("vertical line length", h.VerticalLineLength))
	}

	if body := rec.Representations[0].Body; body != nil {
		if len(body.Image.Data) == 0 {
			errs.Set("image", bdir.Invalid("image size", 0))
		}
		bdir.CheckExtendedBlocks(&errs, &body.Extended)
	}
	return errs.AsError()
}
