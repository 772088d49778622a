package bdir

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bdirkit/pkg/codec"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSegmentationData_CoordinateRoundTrip(t *testing.T) {
	in := SegmentationData{
		Position:    2,
		Quality:     80,
		X:           []uint16{10, 20, 30},
		Y:           []uint16{40, 50, 60},
		Orientation: 90,
	}
	assert.Equal(t, uint64(16), in.Length())

	data, err := codec.Marshal(&in)
	require.NoError(t, err)
	assert.Len(t, data, 16)
	// X and Y are interleaved.
	assert.Equal(t, []byte{0x00, 0x0A, 0x00, 0x28}, data[3:7])

	var out SegmentationData
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestSegmentationData_MismatchedCoordinates(t *testing.T) {
	in := SegmentationData{X: []uint16{1, 2}, Y: []uint16{1}}
	_, err := codec.Marshal(&in)
	assert.True(t, errors.Is(err, ErrCoordinateMismatch))
}

func TestSegmentationBlock_Length(t *testing.T) {
	b := SegmentationBlock{
		AlgorithmVendorID: 0x0101,
		Segments: []SegmentationData{
			{X: []uint16{1}, Y: []uint16{2}},
			{},
		},
	}
	// 14 fixed + (3+4+1) + (3+0+1)
	assert.Equal(t, uint64(26), b.Length())

	data, err := codec.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x1A}, data[:4])

	var out SegmentationBlock
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, uint16(26), out.DeclaredLength())
	assert.Equal(t, b.Length(), out.Length())
	assert.Equal(t, []uint16{1}, out.Segments[0].X)
	assert.Nil(t, out.Segments[1].X)
}

func TestAnnotationBlock_RoundTrip(t *testing.T) {
	in := AnnotationBlock{Entries: []AnnotationData{{Position: 1, Code: 2}, {Position: 7, Code: 1}}}
	assert.Equal(t, uint64(9), in.Length())

	data, err := codec.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x09, 0x02, 0x01, 0x02, 0x07, 0x01}, data)

	var out AnnotationBlock
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, in.Entries, out.Entries)
}

func TestDecodeExtendedBlocks_Empty(t *testing.T) {
	blocks, n, warn := DecodeExtendedBlocks(nil, 0, quietLogger())
	assert.Nil(t, warn)
	assert.Zero(t, n)
	assert.True(t, blocks.Empty())
}

func TestDecodeExtendedBlocks_CommentRun(t *testing.T) {
	trailer := []byte{
		0x00, 0x03, 0x00, 0x06, 'a', 'b',
		0x00, 0x04, 0x00, 0x05, 'c',
	}
	blocks, n, warn := DecodeExtendedBlocks(trailer, 100, quietLogger())
	require.Nil(t, warn)
	assert.Equal(t, len(trailer), n)
	assert.Nil(t, blocks.Segmentation)
	assert.Nil(t, blocks.Annotation)
	require.Len(t, blocks.Comments, 2)
	assert.Equal(t, uint16(0x0003), blocks.Comments[0].Tag)
	assert.Equal(t, []byte("ab"), blocks.Comments[0].Data)
	assert.Equal(t, uint16(0x0004), blocks.Comments[1].Tag)
	assert.Equal(t, []byte("c"), blocks.Comments[1].Data)
}

func TestDecodeExtendedBlocks_FullTrailerRoundTrip(t *testing.T) {
	in := ExtendedBlocks{
		Segmentation: &SegmentationBlock{
			AlgorithmVendorID: 7,
			AlgorithmID:       9,
			QualityScore:      55,
			Segments:          []SegmentationData{{Position: 1, X: []uint16{3, 4}, Y: []uint16{5, 6}, Orientation: 45}},
		},
		Annotation: &AnnotationBlock{Entries: []AnnotationData{{Position: 1, Code: 1}}},
		Comments:   []CommentBlock{{Tag: 0x0003, Data: []byte("hello")}},
	}

	data, err := codec.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, int(in.Length()), len(data))

	out, n, warn := DecodeExtendedBlocks(data, 0, quietLogger())
	require.Nil(t, warn)
	assert.Equal(t, len(data), n)

	again, err := codec.Marshal(&out)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDecodeExtendedBlocks_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		trailer  []byte
		wantErr  error
		wantTag  uint16
		consumed int
		comments int
		hasSeg   bool
		hasAnn   bool
	}{
		{
			name: "segmentation after comment",
			trailer: []byte{
				0x00, 0x03, 0x00, 0x05, 'x',
				0x00, 0x01, 0x00, 0x0E, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			},
			wantErr:  ErrUnexpectedTag,
			wantTag:  TagSegmentation,
			consumed: 5,
			comments: 1,
		},
		{
			name: "segmentation after annotation",
			trailer: []byte{
				0x00, 0x02, 0x00, 0x05, 0x00,
				0x00, 0x01, 0x00, 0x0E, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			},
			wantErr:  ErrUnexpectedTag,
			wantTag:  TagSegmentation,
			consumed: 5,
			hasAnn:   true,
		},
		{
			name: "repeated annotation",
			trailer: []byte{
				0x00, 0x02, 0x00, 0x05, 0x00,
				0x00, 0x02, 0x00, 0x05, 0x00,
			},
			wantErr:  ErrUnexpectedTag,
			wantTag:  TagAnnotation,
			consumed: 5,
			hasAnn:   true,
		},
		{
			name:    "unknown tag",
			trailer: []byte{0x01, 0x00, 0x00, 0x04},
			wantErr: ErrUnexpectedTag,
			wantTag: 0x0100,
		},
		{
			name:    "comment shorter than its header",
			trailer: []byte{0x00, 0x05, 0x00, 0x02},
			wantErr: ErrMalformedBlock,
			wantTag: 0x0005,
		},
		{
			name:     "truncated annotation after segmentation",
			trailer:  []byte{0x00, 0x01, 0x00, 0x0E, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x00, 0x02, 0x00, 0x07, 0x01},
			wantErr:  codec.ErrTruncatedInput,
			wantTag:  TagAnnotation,
			consumed: 14,
			hasSeg:   true,
		},
		{
			name:    "dangling byte",
			trailer: []byte{0x00},
			wantErr: codec.ErrTruncatedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, n, warn := DecodeExtendedBlocks(tt.trailer, 40, quietLogger())
			require.NotNil(t, warn)
			assert.True(t, errors.Is(warn, tt.wantErr), "got %v", warn)
			assert.Equal(t, tt.wantTag, warn.Tag)
			assert.Equal(t, 40+tt.consumed, warn.Offset)
			assert.Equal(t, tt.consumed, n)
			assert.Len(t, blocks.Comments, tt.comments)
			assert.Equal(t, tt.hasSeg, blocks.Segmentation != nil)
			assert.Equal(t, tt.hasAnn, blocks.Annotation != nil)
		})
	}
}

func TestDecodeExtendedBlocks_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	_, _, warn := DecodeExtendedBlocks([]byte{0x00, 0x00, 0x00, 0x00}, 0, log)
	require.NotNil(t, warn)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "ignoring malformed extended data")
}

func TestCommentBlock_TrustsDeclaredLength(t *testing.T) {
	data := []byte{0x00, 0x10, 0x00, 0x07, 1, 2, 3, 0xFF}
	r := codec.NewReader(data)
	var c CommentBlock
	c.Decode(r)
	require.NoError(t, r.Err)
	assert.Equal(t, []byte{1, 2, 3}, c.Data)
	assert.Equal(t, 1, r.Len())
}
