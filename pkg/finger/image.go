package finger

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// ErrUnknownSubtype is returned for a finger subtype name with no position.
var ErrUnknownSubtype = errors.New("unknown finger subtype")

var subtypePositions = map[string]Position{
	"unknown":     PositionUnknown,
	"rightthumb":  PositionRightThumb,
	"rightindex":  PositionRightIndex,
	"rightmiddle": PositionRightMiddle,
	"rightring":   PositionRightRing,
	"rightlittle": PositionRightLittle,
	"leftthumb":   PositionLeftThumb,
	"leftindex":   PositionLeftIndex,
	"leftmiddle":  PositionLeftMiddle,
	"leftring":    PositionLeftRing,
	"leftlittle":  PositionLeftLittle,
}

// PositionFromSubtype maps names such as "Right Thumb" or
// "Left IndexFinger" to a position. Case, spaces, underscores and a
// trailing "finger" are ignored.
func PositionFromSubtype(subtype string) (Position, error) {
	key := strings.ToLower(subtype)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	key = strings.TrimSuffix(key, "finger")
	if p, ok := subtypePositions[key]; ok {
		return p, nil
	}
	return PositionUnknown, errors.Wrapf(ErrUnknownSubtype, "%q", subtype)
}

// ImageRequest describes a captured finger image to wrap in a record.
type ImageRequest struct {
	Purpose     bdir.Purpose
	Subtype     string
	CaptureTime time.Time

	DeviceVendor uint16
	DeviceType   uint16

	// Quality is reported in a single quality block when QualityAlgorithmID
	// is non-zero.
	Quality                  uint8
	QualityAlgorithmVendorID uint16
	QualityAlgorithmID       uint16

	Width      uint16
	Height     uint16
	Resolution uint16 // pixels per inch
	BitDepth   uint8

	Image  []byte
	Format bdir.ImageFormat
}

// CompressionForPurpose returns the compression code and image format used
// when encoding for purpose.
func CompressionForPurpose(purpose bdir.Purpose) (CompressionType, bdir.ImageFormat, error) {
	switch purpose {
	case bdir.PurposeAuth:
		return CompressionJPEG2000Lossy, bdir.ImageFormatJPEG2000Lossy, nil
	case bdir.PurposeRegistration:
		return CompressionJPEG2000Lossless, bdir.ImageFormatJPEG2000Lossless, nil
	}
	return 0, "", errors.Wrapf(bdir.ErrUnknownPurpose, "%q", purpose)
}

// EncodeImage converts req.Image to the format required by req.Purpose and
// returns the encoded record bytes.
func EncodeImage(ctx context.Context, req ImageRequest, tr bdir.ImageTranscoder) ([]byte, error) {
	rec, err := BuildImage(ctx, req, tr)
	if err != nil {
		return nil, err
	}
	return Marshal(rec)
}

// BuildImage is EncodeImage without the final marshal.
func BuildImage(ctx context.Context, req ImageRequest, tr bdir.ImageTranscoder) (*Record, error) {
	compression, format, err := CompressionForPurpose(req.Purpose)
	if err != nil {
		return nil, err
	}
	position, err := PositionFromSubtype(req.Subtype)
	if err != nil {
		return nil, err
	}
	img, err := bdir.PrepareImage(ctx, tr, req.Image, req.Format, format)
	if err != nil {
		return nil, err
	}

	resolution := req.Resolution
	if resolution == 0 {
		resolution = 500
	}
	depth := req.BitDepth
	if depth == 0 {
		depth = 8
	}

	b := NewBuilder().
		WithCaptureTime(req.CaptureTime).
		WithDevice(DeviceTechnologyUnknown, req.DeviceVendor, req.DeviceType).
		WithPosition(position).
		WithResolution(ScaleUnitsPPI, resolution).
		WithBitDepth(depth).
		WithCompression(compression).
		WithImpression(ImpressionLiveScanPlain).
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
