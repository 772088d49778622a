package bdir

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format identifiers and versions ("FIR\0", "IIR\0", "020\0").
const (
	FormatFinger uint32 = 0x46495200
	FormatIris   uint32 = 0x49495200
	Version020   uint32 = 0x30323000
)

// Extended data block tags.
const (
	TagSegmentation uint16 = 0x0001
	TagAnnotation   uint16 = 0x0002
	CommentTagMin   uint16 = 0x0003
	CommentTagMax   uint16 = 0x00FF
)

// Modality names a BDIR family.
type Modality string

const (
	ModalityFinger Modality = "finger"
	ModalityIris   Modality = "iris"
)

// ErrUnknownModality is returned by ParseModality.
var ErrUnknownModality = errors.New("unknown modality")

// ParseModality accepts "finger"/"iris" in any case, plus the "FIR"/"IIR"
// format names.
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finger", "fir":
		return ModalityFinger, nil
	case "iris", "iir":
		return ModalityIris, nil
	}
	return "", errors.Wrapf(ErrUnknownModality, "%q", s)
}

// FormatIdentifier returns the magic value written in the general header.
func (m Modality) FormatIdentifier() uint32 {
	switch m {
	case ModalityFinger:
		return FormatFinger
	case ModalityIris:
		return FormatIris
	}
	return 0
}

// Purpose is the policy context a record is validated against.
type Purpose string

const (
	PurposeAuth         Purpose = "AUTH"
	PurposeRegistration Purpose = "REGISTRATION"
)

// ErrUnknownPurpose is returned by ParsePurpose.
var ErrUnknownPurpose = errors.New("unknown purpose")

// ParsePurpose accepts "auth" and "registration" in any case.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AUTH", "AUTHENTICATION":
		return PurposeAuth, nil
	case "REGISTRATION", "REG":
		return PurposeRegistration, nil
	}
	return "", errors.Wrapf(ErrUnknownPurpose, "%q", s)
}

// DecodeOptions control how a record is read.
type DecodeOptions struct {
	// HeaderOnly reads the general and representation headers, seeks past
	// quality and certification blocks, and does not materialize the body.
	HeaderOnly bool

	// Logger receives unknown-code and malformed-trailer reports. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Log returns the configured logger.
func (o DecodeOptions) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
