package finger

import "fmt"

// Position is the finger position code. Values outside the table decode
// unchanged.
type Position uint8

const (
	PositionUnknown             Position = 0
	PositionRightThumb          Position = 1
	PositionRightIndex          Position = 2
	PositionRightMiddle         Position = 3
	PositionRightRing           Position = 4
	PositionRightLittle         Position = 5
	PositionLeftThumb           Position = 6
	PositionLeftIndex           Position = 7
	PositionLeftMiddle          Position = 8
	PositionLeftRing            Position = 9
	PositionLeftLittle          Position = 10
	PositionPlainRightFour      Position = 13
	PositionPlainLeftFour       Position = 14
	PositionPlainThumbs         Position = 15
	PositionUnknownPalm         Position = 20
	PositionRightFullPalm       Position = 21
	PositionRightWritersPalm    Position = 22
	PositionLeftFullPalm        Position = 23
	PositionLeftWritersPalm     Position = 24
	PositionRightLowerPalm      Position = 25
	PositionRightUpperPalm      Position = 26
	PositionLeftLowerPalm       Position = 27
	PositionLeftUpperPalm       Position = 28
	PositionRightOther          Position = 29
	PositionLeftOther           Position = 30
	PositionRightInterdigital   Position = 31
	PositionRightThenar         Position = 32
	PositionRightHypothenar     Position = 33
	PositionLeftInterdigital    Position = 34
	PositionLeftThenar          Position = 35
	PositionLeftHypothenar      Position = 36
	PositionRightIndexAndMiddle Position = 37
	PositionLeftIndexAndMiddle  Position = 38
)

var positionNames = map[Position]string{
	PositionUnknown:             "UNKNOWN",
	PositionRightThumb:          "RIGHT_THUMB",
	PositionRightIndex:          "RIGHT_INDEX_FINGER",
	PositionRightMiddle:         "RIGHT_MIDDLE_FINGER",
	PositionRightRing:           "RIGHT_RING_FINGER",
	PositionRightLittle:         "RIGHT_LITTLE_FINGER",
	PositionLeftThumb:           "LEFT_THUMB",
	PositionLeftIndex:           "LEFT_INDEX_FINGER",
	PositionLeftMiddle:          "LEFT_MIDDLE_FINGER",
	PositionLeftRing:            "LEFT_RING_FINGER",
	PositionLeftLittle:          "LEFT_LITTLE_FINGER",
	PositionPlainRightFour:      "PLAIN_RIGHT_FOUR_FINGERS",
	PositionPlainLeftFour:       "PLAIN_LEFT_FOUR_FINGERS",
	PositionPlainThumbs:         "PLAIN_THUMBS",
	PositionUnknownPalm:         "UNKNOWN_PALM",
	PositionRightFullPalm:       "RIGHT_FULL_PALM",
	PositionRightWritersPalm:    "RIGHT_WRITERS_PALM",
	PositionLeftFullPalm:        "LEFT_FULL_PALM",
	PositionLeftWritersPalm:     "LEFT_WRITERS_PALM",
	PositionRightLowerPalm:      "RIGHT_LOWER_PALM",
	PositionRightUpperPalm:      "RIGHT_UPPER_PALM",
	PositionLeftLowerPalm:       "LEFT_LOWER_PALM",
	PositionLeftUpperPalm:       "LEFT_UPPER_PALM",
	PositionRightOther:          "RIGHT_OTHER",
	PositionLeftOther:           "LEFT_OTHER",
	PositionRightInterdigital:   "RIGHT_INTERDIGITAL",
	PositionRightThenar:         "RIGHT_THENAR",
	PositionRightHypothenar:     "RIGHT_HYPOTHENAR",
	PositionLeftInterdigital:    "LEFT_INTERDIGITAL",
	PositionLeftThenar:          "LEFT_THENAR",
	PositionLeftHypothenar:      "LEFT_HYPOTHENAR",
	PositionRightIndexAndMiddle: "RIGHT_INDEX_AND_MIDDLE",
	PositionLeftIndexAndMiddle:  "LEFT_INDEX_AND_MIDDLE",
}

// Known reports whether p is a registered position code.
func (p Position) Known() bool {
	_, ok := positionNames[p]
	return ok
}

func (p Position) String() string {
	if s, ok := positionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// CompressionType is the image compression algorithm code.
type CompressionType uint8

const (
	CompressionNone             CompressionType = 0
	CompressionBitPacked        CompressionType = 1
	CompressionWSQ              CompressionType = 2
	CompressionJPEG             CompressionType = 3
	CompressionJPEG2000Lossy    CompressionType = 4
	CompressionJPEG2000Lossless CompressionType = 5
	CompressionPNG              CompressionType = 6
)

var compressionNames = map[CompressionType]string{
	CompressionNone:             "UNCOMPRESSED_NO_BIT_PACKING",
	CompressionBitPacked:        "UNCOMPRESSED_BIT_PACKED",
	CompressionWSQ:              "WSQ",
	CompressionJPEG:             "JPEG",
	CompressionJPEG2000Lossy:    "JPEG_2000_LOSSY",
	CompressionJPEG2000Lossless: "JPEG_2000_LOSS_LESS",
	CompressionPNG:              "PNG",
}

func (c CompressionType) Known() bool {
	_, ok := compressionNames[c]
	return ok
}

func (c CompressionType) String() string {
	if s, ok := compressionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CompressionType(%d)", uint8(c))
}

// ImpressionType describes how the friction ridge image was captured.
type ImpressionType uint8

const (
	ImpressionLiveScanPlain         ImpressionType = 0
	ImpressionLiveScanRolled        ImpressionType = 1
	ImpressionNonLiveScanPlain      ImpressionType = 2
	ImpressionNonLiveScanRolled     ImpressionType = 3
	ImpressionLatentImpression      ImpressionType = 4
	ImpressionLatentTracing         ImpressionType = 5
	ImpressionLatentPhoto           ImpressionType = 6
	ImpressionLatentLift            ImpressionType = 7
	ImpressionLiveScanSwipe         ImpressionType = 8
	ImpressionLiveScanVerticalSwipe ImpressionType = 9
	ImpressionLiveScanPalm          ImpressionType = 24
	ImpressionNonLiveScanPalm       ImpressionType = 25
	ImpressionLatentPalmImpression  ImpressionType = 26
	ImpressionLatentPalmTracing     ImpressionType = 27
	ImpressionLatentPalmPhoto       ImpressionType = 28
	ImpressionLatentPalmLift        ImpressionType = 29
)

var impressionNames = map[ImpressionType]string{
	ImpressionLiveScanPlain:         "LIVE_SCAN_PLAIN",
	ImpressionLiveScanRolled:        "LIVE_SCAN_ROLLED",
	ImpressionNonLiveScanPlain:      "NON_LIVE_SCAN_PLAIN",
	ImpressionNonLiveScanRolled:     "NON_LIVE_SCAN_ROLLED",
	ImpressionLatentImpression:      "LATENT_IMPRESSION",
	ImpressionLatentTracing:         "LATENT_TRACING",
	ImpressionLatentPhoto:           "LATENT_PHOTO",
	ImpressionLatentLift:            "LATENT_LIFT",
	ImpressionLiveScanSwipe:         "LIVE_SCAN_SWIPE",
	ImpressionLiveScanVerticalSwipe: "LIVE_SCAN_VERTICAL_SWIPE",
	ImpressionLiveScanPalm:          "LIVE_SCAN_PALM",
	ImpressionNonLiveScanPalm:       "NON_LIVE_SCAN_PALM",
	ImpressionLatentPalmImpression:  "LATENT_PALM_IMPRESSION",
	ImpressionLatentPalmTracing:     "LATENT_PALM_TRACING",
	ImpressionLatentPalmPhoto:       "LATENT_PALM_PHOTO",
	ImpressionLatentPalmLift:        "LATENT_PALM_LIFT",
}

func (i ImpressionType) Known() bool {
	_, ok := impressionNames[i]
	return ok
}

func (i ImpressionType) String() string {
	if s, ok := impressionNames[i]; ok {
		return s
	}
	return fmt.Sprintf("ImpressionType(%d)", uint8(i))
}

// ScaleUnits is the unit of the sampling rate fields.
type ScaleUnits uint8

const (
	ScaleUnitsPPI  ScaleUnits = 1
	ScaleUnitsPPCM ScaleUnits = 2
)

func (s ScaleUnits) Known() bool {
	return s == ScaleUnitsPPI || s == ScaleUnitsPPCM
}

func (s ScaleUnits) String() string {
	switch s {
	case ScaleUnitsPPI:
		return "PPI"
	case ScaleUnitsPPCM:
		return "PPCM"
	}
	return fmt.Sprintf("ScaleUnits(%d)", uint8(s))
}

// DeviceTechnology codes for finger capture devices.
const (
	DeviceTechnologyUnknown                 uint8 = 0
	DeviceTechnologyWhiteLightOptical       uint8 = 1
	DeviceTechnologyOpticalTIRBright        uint8 = 2
	DeviceTechnologyOpticalTIRDark          uint8 = 3
	DeviceTechnologyOpticalNativeLight      uint8 = 4
	DeviceTechnologyOptical3D               uint8 = 5
	DeviceTechnologyOpticalOCT              uint8 = 6
	DeviceTechnologyOpticalOther            uint8 = 7
	DeviceTechnologyCapacitive              uint8 = 8
	DeviceTechnologyCapacitiveRF            uint8 = 9
	DeviceTechnologyElectroLuminescent      uint8 = 10
	DeviceTechnologyReflectedUltrasonic     uint8 = 11
	DeviceTechnologyUltrasonicImpediography uint8 = 12
	DeviceTechnologyThermal                 uint8 = 13
	DeviceTechnologyDirectPressure          uint8 = 14
	DeviceTechnologyIndirectPressure        uint8 = 15
	DeviceTechnologyLiveTape                uint8 = 16
	DeviceTechnologyLatentImpression        uint8 = 17
	DeviceTechnologyLatentPhoto             uint8 = 18
	DeviceTechnologyLatentMolded            uint8 = 19
	DeviceTechnologyLatentTracing           uint8 = 20
)

// IsKnownDeviceTechnology reports whether code is a registered finger
// capture technology.
func IsKnownDeviceTechnology(code uint8) bool {
	return code <= DeviceTechnologyLatentTracing
}
