package iris

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// ErrUnknownSubtype is returned for an iris subtype name with no eye label.
var ErrUnknownSubtype = errors.New("unknown iris subtype")

// EyeLabelFromSubtype maps "Left", "Right" and "UNKNOWN" to an eye label,
// ignoring case and an "eye" or "iris" suffix.
func EyeLabelFromSubtype(subtype string) (EyeLabel, error) {
	key := strings.ToLower(strings.TrimSpace(subtype))
	key = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(key, "eye"), "iris"))
	switch key {
	case "left":
		return EyeLeft, nil
	case "right":
		return EyeRight, nil
	case "unknown", "":
		return EyeUndefined, nil
	}
	return EyeUndefined, errors.Wrapf(ErrUnknownSubtype, "%q", subtype)
}

// ImageRequest describes a captured iris image to wrap in a record.
type ImageRequest struct {
	Purpose     bdir.Purpose
	Subtype     string
	CaptureTime time.Time

	DeviceVendor uint16
	DeviceType   uint16

	Quality                  uint8
	QualityAlgorithmVendorID uint16
	QualityAlgorithmID       uint16

	Width  uint16
	Height uint16

	Image  []byte
	Format bdir.ImageFormat
}

// Profile is the image type, compression history and target format used
// for a purpose.
type Profile struct {
	ImageType ImageType
	History   CompressionHistory
	Format    bdir.ImageFormat
}

// ProfileForPurpose returns the encoding profile for purpose.
func ProfileForPurpose(purpose bdir.Purpose) (Profile, error) {
	switch purpose {
	case bdir.PurposeAuth:
		return Profile{ImageTypeCroppedAndMasked, CompressionHistoryLossy, bdir.ImageFormatJPEG2000Lossy}, nil
	case bdir.PurposeRegistration:
		return Profile{ImageTypeCropped, CompressionHistoryLosslessOrNone, bdir.ImageFormatJPEG2000Lossless}, nil
	}
	return Profile{}, errors.Wrapf(bdir.ErrUnknownPurpose, "%q", purpose)
}

// EncodeImage converts req.Image for req.Purpose and returns the encoded
// record bytes.
func EncodeImage(ctx context.Context, req ImageRequest, tr bdir.ImageTranscoder) ([]byte, error) {
	rec, err := BuildImage(ctx, req, tr)
	if err != nil {
		return nil, err
	}
	return Marshal(rec)
}

// BuildImage is EncodeImage without the final marshal.
func BuildImage(ctx context.Context, req ImageRequest, tr bdir.ImageTranscoder) (*Record, error) {
	profile, err := ProfileForPurpose(req.Purpose)
	if err != nil {
		return nil, err
	}
	eye, err := EyeLabelFromSubtype(req.Subtype)
	if err != nil {
		return nil, err
	}
	img, err := bdir.PrepareImage(ctx, tr, req.Image, req.Format, profile.Format)
	if err != nil {
		return nil, err
	}

	b := NewBuilder().
		WithCaptureTime(req.CaptureTime).
		WithDevice(DeviceTechnologyCMOSCCD, req.DeviceVendor, req.DeviceType).
		WithEyeLabel(eye).
		WithImageType(profile.ImageType).
		WithImageFormat(ImageFormatMonoJPEG2000).
		WithImageProperties(NewImageProperties(OrientationBase, OrientationBase, profile.History)).
		WithDimensions(req.Width, req.Height).
		WithImage(img)
	if req.QualityAlgorithmID != 0 {
		b.WithQuality(bdir.QualityBlock{
			Score:             req.Quality,
			AlgorithmVendorID: req.QualityAlgorithmVendorID,
			AlgorithmID:       req.QualityAlgorithmID,
		})
	}
	return b.Build()
}
