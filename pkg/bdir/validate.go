package bdir

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"
)

// ErrInvalidField is wrapped by every validation failure.
var ErrInvalidField = errors.New("invalid field")

// Invalid builds a validation error for a field value.
func Invalid(field string, value any) error {
	return errors.Wrapf(ErrInvalidField, "%s: %v", field, value)
}

// IsValidQualityScore accepts 0-100 and the "not computed" value 255.
func IsValidQualityScore(score uint8) bool {
	return score <= 100 || score == QualityScoreUnreported
}

// IsValidCertificationAuthority rejects the reserved authority 0.
func IsValidCertificationAuthority(id uint16) bool {
	return id != 0
}

// IsValidCertificationScheme accepts the registered scheme identifiers.
func IsValidCertificationScheme(id uint8) bool {
	return id <= CertificationSchemePIV
}

// IsValidCaptureDevice requires an unreported device type when the vendor
// is unreported.
func IsValidCaptureDevice(vendor, typ uint16) bool {
	return vendor != 0 || typ == 0
}

// IsValidCaptureDateTime accepts a real calendar instant or the all-0xFF
// unreported value.
func IsValidCaptureDateTime(d CaptureDateTime) bool {
	if d.Unreported() {
		return true
	}
	_, ok := d.Time()
	return ok
}

// ValidateGeneralHeader checks the envelope against the expected format.
func ValidateGeneralHeader(errs *errsx.Map, h *GeneralHeader, format uint32) {
	if h.FormatIdentifier != format {
		errs.Set("format_identifier", Invalid("format identifier", fmt.Sprintf("%#08x", h.FormatIdentifier)))
	}
	if h.Version != Version020 {
		errs.Set("version", Invalid("version", fmt.Sprintf("%#08x", h.Version)))
	}
	if h.ModalityCount == 0 {
		errs.Set("modality_count", Invalid("modality count", h.ModalityCount))
	}
}

// ValidateCapture checks the shared representation header prefix.
func ValidateCapture(errs *errsx.Map, c *CaptureInfo) {
	if !IsValidCaptureDateTime(c.CaptureTime) {
		errs.Set("capture_time", Invalid("capture date time", c.CaptureTime))
	}
	if !IsValidCaptureDevice(c.DeviceVendor, c.DeviceType) {
		errs.Set("capture_device", Invalid("capture device type without vendor", c.DeviceType))
	}
	for i, q := range c.QualityBlocks {
		if !IsValidQualityScore(q.Score) {
			errs.Set(fmt.Sprintf("quality_blocks[%d]", i), Invalid("quality score", q.Score))
		}
	}
	if c.Certification == nil {
		return
	}
	for i, cb := range c.Certification.Blocks {
		if !IsValidCertificationAuthority(cb.AuthorityID) {
			errs.Set(fmt.Sprintf("certification_blocks[%d].authority", i), Invalid("certification authority", cb.AuthorityID))
		}
		if !IsValidCertificationScheme(cb.SchemeID) {
			errs.Set(fmt.Sprintf("certification_blocks[%d].scheme", i), Invalid("certification scheme", cb.SchemeID))
		}
	}
}

// CheckExtendedBlocks reports structural problems a builder must reject
// before encoding.
func CheckExtendedBlocks(errs *errsx.Map, e *ExtendedBlocks) {
	if s := e.Segmentation; s != nil {
		if len(s.Segments) > 255 {
			errs.Set("segmentation", Invalid("segmentation point count", len(s.Segments)))
		}
		for i, d := range s.Segments {
			if len(d.X) != len(d.Y) {
				errs.Set(fmt.Sprintf("segmentation[%d]", i), errors.Wrapf(ErrCoordinateMismatch, "%d X, %d Y", len(d.X), len(d.Y)))
			} else if len(d.X) > 255 {
				errs.Set(fmt.Sprintf("segmentation[%d]", i), Invalid("coordinate count", len(d.X)))
			}
		}
		if s.Length() > 0xFFFF {
			errs.Set("segmentation_length", Invalid("segmentation block length", s.Length()))
		}
	}
	if a := e.Annotation; a != nil && len(a.Entries) > 255 {
		errs.Set("annotation", Invalid("annotation entry count", len(a.Entries)))
	}
	for i, c := range e.Comments {
		if !IsCommentTag(c.Tag) {
			errs.Set(fmt.Sprintf("comments[%d].tag", i), Invalid("comment tag", fmt.Sprintf("%#04x", c.Tag)))
		}
		if c.Length() > 0xFFFF {
			errs.Set(fmt.Sprintf("comments[%d].length", i), Invalid("comment length", c.Length()))
		}
	}
}

// CheckCapture reports header counts that do not fit their count bytes.
func CheckCapture(errs *errsx.Map, c *CaptureInfo) {
	if len(c.QualityBlocks) > 255 {
		errs.Set("quality_blocks", Invalid("quality block count", len(c.QualityBlocks)))
	}
	if c.Certification != nil && len(c.Certification.Blocks) > 255 {
		errs.Set("certification_blocks", Invalid("certification block count", len(c.Certification.Blocks)))
	}
}
