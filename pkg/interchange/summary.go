package interchange

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// Summary is a flat view of a decoded record for CLI and API output.
type Summary struct {
	Modality         string `json:"modality" yaml:"modality" cbor:"modality"`
	Version          string `json:"version" yaml:"version" cbor:"version"`
	FormatIdentifier string `json:"format_identifier" yaml:"format_identifier" cbor:"format_identifier"`
	RecordLength     uint64 `json:"record_length" yaml:"record_length" cbor:"record_length"`
	Certified        bool   `json:"certified" yaml:"certified" cbor:"certified"`
	HeaderOnly       bool   `json:"header_only" yaml:"header_only" cbor:"header_only"`

	CaptureTime         string  `json:"capture_time" yaml:"capture_time" cbor:"capture_time"`
	DeviceTechnology    uint8   `json:"device_technology" yaml:"device_technology" cbor:"device_technology"`
	DeviceVendor        uint16  `json:"device_vendor" yaml:"device_vendor" cbor:"device_vendor"`
	DeviceType          uint16  `json:"device_type" yaml:"device_type" cbor:"device_type"`
	QualityScores       []uint8 `json:"quality_scores,omitempty" yaml:"quality_scores,omitempty" cbor:"quality_scores,omitempty"`
	CertificationBlocks int     `json:"certification_blocks" yaml:"certification_blocks" cbor:"certification_blocks"`
	BodyLength          uint32  `json:"body_length" yaml:"body_length" cbor:"body_length"`

	Width     uint16 `json:"width" yaml:"width" cbor:"width"`
	Height    uint16 `json:"height" yaml:"height" cbor:"height"`
	BitDepth  uint8  `json:"bit_depth" yaml:"bit_depth" cbor:"bit_depth"`
	ImageSize uint32 `json:"image_size" yaml:"image_size" cbor:"image_size"`

	Position    string `json:"position,omitempty" yaml:"position,omitempty" cbor:"position,omitempty"`
	Compression string `json:"compression,omitempty" yaml:"compression,omitempty" cbor:"compression,omitempty"`
	Impression  string `json:"impression,omitempty" yaml:"impression,omitempty" cbor:"impression,omitempty"`
	Resolution  uint16 `json:"resolution,omitempty" yaml:"resolution,omitempty" cbor:"resolution,omitempty"`
	Segments    int    `json:"segments,omitempty" yaml:"segments,omitempty" cbor:"segments,omitempty"`
	Annotations int    `json:"annotations,omitempty" yaml:"annotations,omitempty" cbor:"annotations,omitempty"`
	Comments    int    `json:"comments,omitempty" yaml:"comments,omitempty" cbor:"comments,omitempty"`

	EyeLabel    string `json:"eye_label,omitempty" yaml:"eye_label,omitempty" cbor:"eye_label,omitempty"`
	ImageType   string `json:"image_type,omitempty" yaml:"image_type,omitempty" cbor:"image_type,omitempty"`
	ImageFormat string `json:"image_format,omitempty" yaml:"image_format,omitempty" cbor:"image_format,omitempty"`

	TrailerWarning string `json:"trailer_warning,omitempty" yaml:"trailer_warning,omitempty" cbor:"trailer_warning,omitempty"`
}

// Summary flattens the held record. A nil or empty Decoded yields the zero
// Summary.
func (d *Decoded) Summary() Summary {
	h := d.Header()
	if h == nil {
		return Summary{}
	}
	s := Summary{
		Modality:         string(d.Selector.Modality),
		Version:          string(d.Selector.Version),
		FormatIdentifier: formatName(h.FormatIdentifier),
		Certified:        h.Certified(),
		HeaderOnly:       d.HeaderOnly(),
	}

	switch {
	case d.Finger != nil:
		s.RecordLength = d.Finger.Length()
		rep := d.Finger.Representation()
		if rep == nil {
			return s
		}
		rh := &rep.Header
		s.capture(&rh.CaptureInfo)
		s.Width = rh.HorizontalLineLength
		s.Height = rh.VerticalLineLength
		s.BitDepth = rh.BitDepth
		s.Position = rh.Position.String()
		s.Compression = rh.Compression.String()
		s.Impression = rh.Impression.String()
		s.Resolution = rh.ImageSamplingRateHorizontal
		if body := rep.Body; body != nil {
			s.ImageSize = uint32(len(body.Image.Data))
			if body.Extended.Segmentation != nil {
				s.Segments = len(body.Extended.Segmentation.Segments)
			}
			if body.Extended.Annotation != nil {
				s.Annotations = len(body.Extended.Annotation.Entries)
			}
			s.Comments = len(body.Extended.Comments)
			if body.TrailerWarning != nil {
				s.TrailerWarning = body.TrailerWarning.Error()
			}
		}
	case d.Iris != nil:
		s.RecordLength = d.Iris.Length()
		rep := d.Iris.Representation()
		if rep == nil {
			return s
		}
		rh := &rep.Header
		s.capture(&rh.CaptureInfo)
		s.Width = rh.Width
		s.Height = rh.Height
		s.BitDepth = rh.BitDepth
		s.EyeLabel = rh.EyeLabel.String()
		s.ImageType = rh.ImageType.String()
		s.ImageFormat = rh.ImageFormat.String()
		if rep.Body != nil {
			s.ImageSize = uint32(len(rep.Body.Image.Data))
		}
	}
	return s
}

func (s *Summary) capture(c *bdir.CaptureInfo) {
	s.CaptureTime = captureTime(c.CaptureTime)
	s.DeviceTechnology = c.DeviceTechnology
	s.DeviceVendor = c.DeviceVendor
	s.DeviceType = c.DeviceType
	for _, q := range c.QualityBlocks {
		s.QualityScores = append(s.QualityScores, q.Score)
	}
	s.CertificationBlocks = c.CertificationBlockCount()
	s.BodyLength = c.BodyLength
}

func captureTime(d bdir.CaptureDateTime) string {
	if d.Unreported() {
		return "unreported"
	}
	if t, ok := d.Time(); ok {
		return t.Format(time.RFC3339Nano)
	}
	return "invalid"
}

func formatName(id uint32) string {
	switch id {
	case bdir.FormatFinger:
		return "FIR"
	case bdir.FormatIris:
		return "IIR"
	}
	return fmt.Sprintf("%#08x", id)
}

// Rows lists the populated fields as label/value pairs in a stable order.
func (s Summary) Rows() [][2]string {
	rows := [][2]string{
		{"Modality", s.Modality},
		{"Version", s.Version},
		{"Format", s.FormatIdentifier},
		{"Record length", strconv.FormatUint(s.RecordLength, 10)},
		{"Certified", strconv.FormatBool(s.Certified)},
		{"Header only", strconv.FormatBool(s.HeaderOnly)},
		{"Capture time", s.CaptureTime},
		{"Device", fmt.Sprintf("technology=%d vendor=%#04x type=%#04x", s.DeviceTechnology, s.DeviceVendor, s.DeviceType)},
		{"Quality scores", fmt.Sprint(s.QualityScores)},
		{"Certification blocks", strconv.Itoa(s.CertificationBlocks)},
		{"Body length", strconv.FormatUint(uint64(s.BodyLength), 10)},
		{"Dimensions", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"Bit depth", strconv.Itoa(int(s.BitDepth))},
		{"Image size", strconv.FormatUint(uint64(s.ImageSize), 10)},
	}
	opt := func(label, v string) {
		if v != "" {
			rows = append(rows, [2]string{label, v})
		}
	}
	count := func(label string, n int) {
		if n > 0 {
			rows = append(rows, [2]string{label, strconv.Itoa(n)})
		}
	}
	opt("Position", s.Position)
	opt("Compression", s.Compression)
	opt("Impression", s.Impression)
	if s.Resolution > 0 {
		opt("Resolution", strconv.Itoa(int(s.Resolution)))
	}
	count("Segments", s.Segments)
	count("Annotations", s.Annotations)
	count("Comments", s.Comments)
	opt("Eye", s.EyeLabel)
	opt("Image type", s.ImageType)
	opt("Image format", s.ImageFormat)
	opt("Trailer warning", s.TrailerWarning)
	return rows
}
