package interchange

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/codec"
	"github.com/ssargent/bdirkit/pkg/finger"
	"github.com/ssargent/bdirkit/pkg/iris"
)

var captured = time.Date(2024, time.March, 5, 8, 30, 15, 250*int(time.Millisecond), time.UTC)

func quiet() bdir.DecodeOptions {
	return bdir.DecodeOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func fingerBytes(t *testing.T) []byte {
	t.Helper()
	rec, err := finger.NewBuilder().
		WithCaptureTime(captured).
		WithDevice(finger.DeviceTechnologyOpticalTIRBright, 0x0102, 0x0003).
		WithQuality(bdir.QualityBlock{Score: 77, AlgorithmVendorID: 1, AlgorithmID: 2}).
		WithPosition(finger.PositionRightIndex).
		WithDimensions(320, 480).
		WithImage([]byte("jp2-lossless")).
		WithComment(0x0003, []byte("hi")).
		Build()
	require.NoError(t, err)
	data, err := finger.Marshal(rec)
	require.NoError(t, err)
	return data
}

func irisBytes(t *testing.T) []byte {
	t.Helper()
	rec, err := iris.NewBuilder().
		WithCaptureTime(captured).
		WithEyeLabel(iris.EyeRight).
		WithDimensions(640, 480).
		WithImage([]byte("j2k")).
		Build()
	require.NoError(t, err)
	data, err := iris.Marshal(rec)
	require.NoError(t, err)
	return data
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	for _, sel := range []Selector{
		{Modality: bdir.ModalityFinger, Version: "ISO19794_4_2005"},
		{Modality: bdir.ModalityFinger, Version: VersionIris2011},
		{Modality: bdir.ModalityIris, Version: VersionFinger2011},
		{Modality: "face", Version: VersionFinger2011},
	} {
		// nil data would fail truncation if any byte were read.
		d, err := Decode(nil, sel, quiet())
		assert.Nil(t, d)
		assert.True(t, errors.Is(err, ErrUnsupportedVersion), sel.String())

		var uv *UnsupportedVersionError
		require.True(t, errors.As(err, &uv))
		assert.Equal(t, sel, uv.Selector)
	}
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("FIR", "")
	require.NoError(t, err)
	assert.Equal(t, Selector{Modality: bdir.ModalityFinger, Version: VersionFinger2011}, sel)

	sel, err = ParseSelector("iris", "iso19794_6_2011")
	require.NoError(t, err)
	assert.Equal(t, VersionIris2011, sel.Version)

	_, err = ParseSelector("iris", "ISO19794_4_2011")
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	_, err = ParseSelector("palm", "")
	assert.True(t, errors.Is(err, bdir.ErrUnknownModality))
}

func TestDecode_FingerRoundTrip(t *testing.T) {
	data := fingerBytes(t)

	d, err := Decode(data, DefaultSelector(bdir.ModalityFinger), quiet())
	require.NoError(t, err)
	require.NotNil(t, d.Finger)
	assert.Nil(t, d.Iris)
	assert.False(t, d.HeaderOnly())

	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, out)

	s := d.Summary()
	assert.Equal(t, "finger", s.Modality)
	assert.Equal(t, "ISO19794_4_2011", s.Version)
	assert.Equal(t, "FIR", s.FormatIdentifier)
	assert.Equal(t, uint64(len(data)), s.RecordLength)
	assert.Equal(t, "2024-03-05T08:30:15.25Z", s.CaptureTime)
	assert.Equal(t, []uint8{77}, s.QualityScores)
	assert.Equal(t, "RIGHT_INDEX_FINGER", s.Position)
	assert.Equal(t, "JPEG_2000_LOSS_LESS", s.Compression)
	assert.Equal(t, uint16(500), s.Resolution)
	assert.Equal(t, uint32(len("jp2-lossless")), s.ImageSize)
	assert.Equal(t, 1, s.Comments)
	assert.Empty(t, s.EyeLabel)
	assert.False(t, s.Certified)
}

func TestDecode_IrisSummary(t *testing.T) {
	data := irisBytes(t)

	d, err := Decode(data, DefaultSelector(bdir.ModalityIris), quiet())
	require.NoError(t, err)
	require.NotNil(t, d.Iris)

	out, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, out)

	s := d.Summary()
	assert.Equal(t, "IIR", s.FormatIdentifier)
	assert.Equal(t, "SUBJECT_EYE_RIGHT", s.EyeLabel)
	assert.Equal(t, "CROPPED", s.ImageType)
	assert.Equal(t, "MONO_JPEG2000", s.ImageFormat)
	assert.Equal(t, uint16(640), s.Width)
	assert.Empty(t, s.Position)

	labels := map[string]string{}
	for _, row := range s.Rows() {
		labels[row[0]] = row[1]
	}
	assert.Equal(t, "SUBJECT_EYE_RIGHT", labels["Eye"])
	assert.Equal(t, "640x480", labels["Dimensions"])
	assert.NotContains(t, labels, "Position")
}

func TestDecode_HeaderOnly(t *testing.T) {
	data := fingerBytes(t)
	opts := quiet()
	opts.HeaderOnly = true

	d, err := Decode(data, DefaultSelector(bdir.ModalityFinger), opts)
	require.NoError(t, err)
	assert.True(t, d.HeaderOnly())

	s := d.Summary()
	assert.True(t, s.HeaderOnly)
	assert.Zero(t, s.ImageSize)
	assert.NotZero(t, s.BodyLength)

	_, err = d.Encode()
	assert.True(t, errors.Is(err, bdir.ErrHeaderOnly))
}

func TestDecode_WrapsTruncation(t *testing.T) {
	_, err := Decode(fingerBytes(t)[:12], DefaultSelector(bdir.ModalityFinger), quiet())
	assert.True(t, errors.Is(err, codec.ErrTruncatedInput))
}

func TestDecoded_Validate(t *testing.T) {
	d, err := Decode(fingerBytes(t), DefaultSelector(bdir.ModalityFinger), quiet())
	require.NoError(t, err)
	assert.NoError(t, d.Validate(bdir.PurposeRegistration))

	errs, ok := d.Validate(bdir.PurposeAuth).(errsx.Map)
	require.True(t, ok)
	assert.Contains(t, errs, "compression")

	var empty *Decoded
	assert.True(t, errors.Is(empty.Validate(bdir.PurposeAuth), ErrEmpty))
	_, err = (&Decoded{}).Encode()
	assert.True(t, errors.Is(err, ErrEmpty))
	assert.Equal(t, Summary{}, (&Decoded{}).Summary())
}

func TestDetect(t *testing.T) {
	m, err := Detect(fingerBytes(t))
	require.NoError(t, err)
	assert.Equal(t, bdir.ModalityFinger, m)

	m, err = Detect(irisBytes(t))
	require.NoError(t, err)
	assert.Equal(t, bdir.ModalityIris, m)

	_, err = Detect([]byte("FAC\x00"))
	assert.True(t, errors.Is(err, bdir.ErrUnknownModality))
	_, err = Detect([]byte{0x46})
	assert.True(t, errors.Is(err, bdir.ErrUnknownModality))
}
