package bdir

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// stubRep is a minimal representation: an optional certification marker
// byte followed by length-prefixed image data.
type stubRep struct {
	certified bool
	image     ImageData
}

func (s *stubRep) Certified() bool { return s.certified }

func (s *stubRep) Length() uint64 {
	n := s.image.Length()
	if s.certified {
		n++
	}
	return n
}

func (s *stubRep) Encode(w *codec.Writer) {
	if s.certified {
		w.WriteU8(0xCC)
	}
	s.image.Encode(w)
}

func decodeStub(r *codec.Reader, certified bool, _ DecodeOptions) *stubRep {
	s := &stubRep{certified: certified}
	if certified {
		r.ReadU8()
	}
	s.image.Decode(r)
	return s
}

func TestGeneralHeader_LengthIncludesHeader(t *testing.T) {
	h := GeneralHeader{
		FormatIdentifier:     FormatFinger,
		Version:              Version020,
		RepresentationLength: 100,
		RepresentationCount:  1,
		CertificationFlag:    CertificationPresent,
		ModalityCount:        1,
	}
	data, err := codec.Marshal(&h)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x46, 0x49, 0x52, 0x00,
		0x30, 0x32, 0x30, 0x00,
		0x00, 0x00, 0x00, 0x74,
		0x00, 0x01, 0x01, 0x01,
	}, data)

	var out GeneralHeader
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, h, out)
	assert.True(t, out.Certified())
}

func TestGeneralHeader_ShortLengthNormalized(t *testing.T) {
	data := []byte{
		0x49, 0x49, 0x52, 0x00,
		0x30, 0x32, 0x30, 0x00,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x01, 0x02, 0x02,
	}
	var h GeneralHeader
	require.NoError(t, codec.Unmarshal(data, &h))
	assert.Zero(t, h.RepresentationLength)
	assert.False(t, h.Certified(), "only flag value 1 means present")
}

func TestRecord_EncodeDerivesHeader(t *testing.T) {
	rec := &Record[*stubRep]{
		Header: GeneralHeader{FormatIdentifier: FormatIris, Version: Version020, ModalityCount: 1},
		Representations: []*stubRep{
			{certified: true, image: ImageData{Data: []byte{1, 2, 3}}},
		},
	}
	assert.Equal(t, uint64(16+1+4+3), rec.Length())

	data, err := codec.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x18}, data[8:12])
	assert.Equal(t, []byte{0x00, 0x01, 0x01}, data[12:15])

	out, err := DecodeRecord(codec.NewReader(data), decodeStub, DecodeOptions{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, uint32(8), out.Header.RepresentationLength)
	assert.True(t, out.Representation().certified)
	assert.Equal(t, []byte{1, 2, 3}, out.Representation().image.Data)
}

func TestRecord_ReservedCertificationFlagRoundTrips(t *testing.T) {
	rec := &Record[*stubRep]{
		Header:          GeneralHeader{FormatIdentifier: FormatFinger, Version: Version020},
		Representations: []*stubRep{{image: ImageData{Data: []byte{9}}}},
	}
	data, err := codec.Marshal(rec)
	require.NoError(t, err)
	data[14] = 2

	out, err := DecodeRecord(codec.NewReader(data), decodeStub, DecodeOptions{Logger: quietLogger()})
	require.NoError(t, err)
	assert.False(t, out.Header.Certified())
	assert.Equal(t, uint8(2), out.Header.CertificationFlag)

	again, err := codec.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	out.Representation().certified = true
	again, err = codec.Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, CertificationPresent, again[14])
}

func TestRecord_CertificationMismatch(t *testing.T) {
	rec := &Record[*stubRep]{
		Representations: []*stubRep{{certified: true}, {certified: false}},
	}
	_, err := codec.Marshal(rec)
	assert.True(t, errors.Is(err, ErrCertificationMismatch))
}

func TestDecodeRecord_UnsupportedCount(t *testing.T) {
	for _, count := range []uint16{0, 2} {
		data := []byte{
			0x46, 0x49, 0x52, 0x00,
			0x30, 0x32, 0x30, 0x00,
			0x00, 0x00, 0x00, 0x10,
			byte(count >> 8), byte(count), 0x00, 0x01,
		}
		_, err := DecodeRecord(codec.NewReader(data), decodeStub, DecodeOptions{Logger: quietLogger()})
		require.Error(t, err)

		var countErr *UnsupportedRepresentationCountError
		require.True(t, errors.As(err, &countErr))
		assert.Equal(t, count, countErr.Count)
		assert.True(t, errors.Is(err, ErrUnsupportedRepresentationCount))
	}
}

func TestDecodeRecord_Truncated(t *testing.T) {
	rec := &Record[*stubRep]{
		Header:          GeneralHeader{FormatIdentifier: FormatFinger, Version: Version020, ModalityCount: 1},
		Representations: []*stubRep{{image: ImageData{Data: []byte("payload")}}},
	}
	data, err := codec.Marshal(rec)
	require.NoError(t, err)

	for _, cut := range []int{0, 10, 16, 19, len(data) - 1} {
		_, err := DecodeRecord(codec.NewReader(data[:cut]), decodeStub, DecodeOptions{Logger: quietLogger()})
		assert.True(t, errors.Is(err, codec.ErrTruncatedInput), "cut at %d: %v", cut, err)
	}
}

func TestCaptureDateTime_ZeroBasedMonth(t *testing.T) {
	when := time.Date(2024, time.March, 9, 13, 45, 30, 250*int(time.Millisecond), time.UTC)
	d := CaptureDateTimeFrom(when)
	assert.Equal(t, uint8(2), d.Month)

	data, err := codec.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0xE8, 0x03, 0x09, 0x0D, 0x2D, 0x1E, 0x00, 0xFA}, data)

	var out CaptureDateTime
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, d, out)

	got, ok := out.Time()
	require.True(t, ok)
	assert.True(t, when.Equal(got))
}

func TestCaptureDateTime_Unreported(t *testing.T) {
	d := UnreportedCaptureDateTime()
	data, err := codec.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, data)

	var out CaptureDateTime
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.True(t, out.Unreported())
	_, ok := out.Time()
	assert.False(t, ok)
	assert.True(t, IsValidCaptureDateTime(out))
}

func TestCaptureDateTime_ZeroMonthOnWireRoundTrips(t *testing.T) {
	data := []byte{0x07, 0xE8, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	var d CaptureDateTime
	require.NoError(t, codec.Unmarshal(data, &d))
	assert.Equal(t, uint8(0xFF), d.Month)
	assert.False(t, IsValidCaptureDateTime(d))

	again, err := codec.Marshal(&d)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestCaptureInfo_HeaderOnlySkipsBlocks(t *testing.T) {
	c := CaptureInfo{
		CaptureTime:   UnreportedCaptureDateTime(),
		QualityBlocks: []QualityBlock{{Score: 90, AlgorithmVendorID: 1, AlgorithmID: 2}, {Score: 255}},
		Certification: &CertificationSection{Blocks: []CertificationBlock{{AuthorityID: 5, SchemeID: 1}}},
	}
	full := c.CaptureLength()
	assert.Equal(t, uint64(19+10+1+3), full)

	buf := make([]byte, 0, full)
	w := codec.NewWriter(writerFunc(func(p []byte) (int, error) {
		buf = append(buf, p...)
		return len(p), nil
	}))
	c.EncodeCapture(w, 1234)
	require.NoError(t, w.Flush())

	var skipped CaptureInfo
	r := codec.NewReader(buf)
	declared := skipped.DecodeCapture(r, true, DecodeOptions{HeaderOnly: true})
	require.NoError(t, r.Err)
	assert.Equal(t, uint32(1234), declared)
	assert.Zero(t, r.Len())
	assert.Nil(t, skipped.QualityBlocks)
	assert.Equal(t, 2, skipped.QualityBlockCount())
	assert.Equal(t, 1, skipped.CertificationBlockCount())
	assert.Equal(t, full, skipped.CaptureLength())
	assert.True(t, skipped.Skipped())

	w = codec.NewWriter(writerFunc(func(p []byte) (int, error) { return len(p), nil }))
	skipped.EncodeCapture(w, 1234)
	assert.True(t, errors.Is(w.Flush(), ErrHeaderOnly))
}

func TestCaptureInfo_ResolveBodyLength(t *testing.T) {
	var c CaptureInfo
	assert.True(t, c.ResolveBodyLength(100, 40))
	assert.Equal(t, uint32(60), c.BodyLength)
	assert.False(t, c.ResolveBodyLength(10, 40))
	assert.Zero(t, c.BodyLength)
}

func TestValidateCapture(t *testing.T) {
	c := CaptureInfo{
		CaptureTime:   CaptureDateTime{Year: 2024, Month: 1, Day: 30},
		DeviceType:    4,
		QualityBlocks: []QualityBlock{{Score: 101}},
		Certification: &CertificationSection{Blocks: []CertificationBlock{{AuthorityID: 0, SchemeID: 9}}},
	}
	var errs errsx.Map
	ValidateCapture(&errs, &c)

	err := errs.AsError()
	require.Error(t, err)
	m, ok := err.(errsx.Map)
	require.True(t, ok)
	for _, key := range []string{
		"capture_time",
		"capture_device",
		"quality_blocks[0]",
		"certification_blocks[0].authority",
		"certification_blocks[0].scheme",
	} {
		assert.Contains(t, m, key)
	}
}

func TestParsePurpose(t *testing.T) {
	p, err := ParsePurpose("auth")
	require.NoError(t, err)
	assert.Equal(t, PurposeAuth, p)

	p, err = ParsePurpose(" Registration ")
	require.NoError(t, err)
	assert.Equal(t, PurposeRegistration, p)

	_, err = ParsePurpose("verify")
	assert.True(t, errors.Is(err, ErrUnknownPurpose))
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestParseImageFormat(t *testing.T) {
	for in, want := range map[string]ImageFormat{
		"WSQ":         ImageFormatWSQ,
		"jpg":         ImageFormatJPEG,
		"jp2":         ImageFormatJPEG2000Lossless,
		" jp2-lossy ": ImageFormatJPEG2000Lossy,
		"png":         ImageFormatPNG,
	} {
		got, err := ParseImageFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseImageFormat("bmp")
	assert.True(t, errors.Is(err, ErrUnknownImageFormat))
}
