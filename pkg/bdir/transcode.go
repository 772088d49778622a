package bdir

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// ImageFormat names a compressed image encoding handled by an
// ImageTranscoder.
type ImageFormat string

const (
	ImageFormatRaw              ImageFormat = "raw"
	ImageFormatWSQ              ImageFormat = "wsq"
	ImageFormatJPEG             ImageFormat = "jpeg"
	ImageFormatJPEG2000Lossy    ImageFormat = "jp2-lossy"
	ImageFormatJPEG2000Lossless ImageFormat = "jp2-lossless"
	ImageFormatPNG              ImageFormat = "png"
)

// ErrUnknownImageFormat is returned by ParseImageFormat.
var ErrUnknownImageFormat = errors.New("unknown image format")

// ParseImageFormat accepts the format names above in any case, plus "jpg",
// "jp2" (lossless) and "j2k".
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ImageFormatRaw, ImageFormatWSQ, ImageFormatJPEG, ImageFormatJPEG2000Lossy,
		ImageFormatJPEG2000Lossless, ImageFormatPNG:
		return f, nil
	case "jpg":
		return ImageFormatJPEG, nil
	case "jp2", "j2k":
		return ImageFormatJPEG2000Lossless, nil
	}
	return "", errors.Wrapf(ErrUnknownImageFormat, "%q", s)
}

// ErrTranscoderRequired is returned when an image needs conversion but no
// ImageTranscoder was supplied.
var ErrTranscoderRequired = errors.New("image must be transcoded but no transcoder was configured")

// ImageTranscoder converts image payloads between compressed formats. Pixel
// work lives outside this module.
type ImageTranscoder interface {
	Transcode(ctx context.Context, img []byte, from, to ImageFormat) ([]byte, error)
}

// PrepareImage returns img in the target format, calling tr only when the
// formats differ.
func PrepareImage(ctx context.Context, tr ImageTranscoder, img []byte, from, to ImageFormat) ([]byte, error) {
	if from == to {
		return img, nil
	}
	if tr == nil {
		return nil, errors.Wrapf(ErrTranscoderRequired, "%s to %s", from, to)
	}
	out, err := tr.Transcode(ctx, img, from, to)
	if err != nil {
		return nil, errors.Wrapf(err, "transcode %s to %s", from, to)
	}
	return out, nil
}
