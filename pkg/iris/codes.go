package iris

import "fmt"

// EyeLabel says which eye was captured.
type EyeLabel uint8

const (
	EyeUndefined EyeLabel = 0
	EyeRight     EyeLabel = 1
	EyeLeft      EyeLabel = 2
)

func (e EyeLabel) Known() bool {
	return e <= EyeLeft
}

func (e EyeLabel) String() string {
	switch e {
	case EyeUndefined:
		return "SUBJECT_EYE_UNDEF"
	case EyeRight:
		return "SUBJECT_EYE_RIGHT"
	case EyeLeft:
		return "SUBJECT_EYE_LEFT"
	}
	return fmt.Sprintf("EyeLabel(%d)", uint8(e))
}

// ImageType describes the cropping applied to the iris image.
type ImageType uint8

const (
	ImageTypeUncropped        ImageType = 1
	ImageTypeVGA              ImageType = 2
	ImageTypeCropped          ImageType = 3
	ImageTypeCroppedAndMasked ImageType = 7
)

func (t ImageType) Known() bool {
	switch t {
	case ImageTypeUncropped, ImageTypeVGA, ImageTypeCropped, ImageTypeCroppedAndMasked:
		return true
	}
	return false
}

func (t ImageType) String() string {
	switch t {
	case ImageTypeUncropped:
		return "UNCROPPED"
	case ImageTypeVGA:
		return "VGA"
	case ImageTypeCropped:
		return "CROPPED"
	case ImageTypeCroppedAndMasked:
		return "CROPPED_AND_MASKED"
	}
	return fmt.Sprintf("ImageType(%d)", uint8(t))
}

// ImageFormat is the iris image encoding code.
type ImageFormat uint8

const (
	ImageFormatMonoRaw      ImageFormat = 0x02
	ImageFormatRGBRaw       ImageFormat = 0x04
	ImageFormatMonoJPEG     ImageFormat = 0x06
	ImageFormatRGBJPEG      ImageFormat = 0x08
	ImageFormatMonoJPEGLS   ImageFormat = 0x0A
	ImageFormatRGBJPEGLS    ImageFormat = 0x0C
	ImageFormatMonoPNG      ImageFormat = 0x0E
	ImageFormatRGBPNG       ImageFormat = 0x10
	ImageFormatMonoJPEG2000 ImageFormat = 0x12
	ImageFormatRGBJPEG2000  ImageFormat = 0x14
)

var imageFormatNames = map[ImageFormat]string{
	ImageFormatMonoRaw:      "MONO_RAW",
	ImageFormatRGBRaw:       "RGB_RAW",
	ImageFormatMonoJPEG:     "MONO_JPEG",
	ImageFormatRGBJPEG:      "RGB_JPEG",
	ImageFormatMonoJPEGLS:   "MONO_JPEG_LS",
	ImageFormatRGBJPEGLS:    "RGB_JPEG_LS",
	ImageFormatMonoPNG:      "MONO_PNG",
	ImageFormatRGBPNG:       "RGB_PNG",
	ImageFormatMonoJPEG2000: "MONO_JPEG2000",
	ImageFormatRGBJPEG2000:  "RGB_JPEG2000",
}

func (f ImageFormat) Known() bool {
	_, ok := imageFormatNames[f]
	return ok
}

func (f ImageFormat) String() string {
	if s, ok := imageFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("ImageFormat(%#02x)", uint8(f))
}

// Orientation values for the horizontal and vertical image property bits.
type Orientation uint8

const (
	OrientationUndefined Orientation = 0
	OrientationBase      Orientation = 1
	OrientationFlipped   Orientation = 2
)

func (o Orientation) Known() bool {
	return o <= OrientationFlipped
}

// CompressionHistory records whether the image was ever lossy compressed.
type CompressionHistory uint8

const (
	CompressionHistoryUndefined      CompressionHistory = 0
	CompressionHistoryLosslessOrNone CompressionHistory = 1
	CompressionHistoryLossy          CompressionHistory = 2
)

func (c CompressionHistory) Known() bool {
	return c <= CompressionHistoryLossy
}

// ImageProperties packs orientation and compression history into one byte.
type ImageProperties uint8

// NewImageProperties packs the three two-bit fields.
func NewImageProperties(horizontal, vertical Orientation, history CompressionHistory) ImageProperties {
	return ImageProperties(uint8(horizontal)&0x03 | (uint8(vertical)&0x03)<<2 | (uint8(history)&0x03)<<4)
}

func (p ImageProperties) HorizontalOrientation() Orientation {
	return Orientation(p & 0x03)
}

func (p ImageProperties) VerticalOrientation() Orientation {
	return Orientation(p >> 2 & 0x03)
}

func (p ImageProperties) CompressionHistory() CompressionHistory {
	return CompressionHistory(p >> 4 & 0x03)
}

// Sentinel values for range and roll fields.
const (
	RangeUnassigned          uint16 = 0
	RangeFailed              uint16 = 1
	RangeOverflow            uint16 = 0xFFFF
	RollAngleUndefined       uint16 = 0xFFFF
	RollUncertaintyUndefined uint16 = 0xFFFF
)

// Iris capture device technologies.
const (
	DeviceTechnologyUnknown uint8 = 0
	DeviceTechnologyCMOSCCD uint8 = 1
)

// IsKnownDeviceTechnology reports whether code is a registered iris capture
// technology.
func IsKnownDeviceTechnology(code uint8) bool {
	return code <= DeviceTechnologyCMOSCCD
}
