package bdir

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// ErrCoordinateMismatch is returned when a segmentation point has X and Y
// arrays of different lengths.
var ErrCoordinateMismatch = errors.New("segmentation coordinates: X and Y lengths differ")

// segmentationFixedLength covers tag, length, algorithm and quality fields
// and the point count.
const segmentationFixedLength = 2 + 2 + 2 + 2 + 1 + 2 + 2 + 1

// SegmentationData is one segmented region with its outline coordinates.
type SegmentationData struct {
	Position    uint8
	Quality     uint8
	X           []uint16
	Y           []uint16
	Orientation uint8
}

func (d *SegmentationData) Length() uint64 {
	return 3 + 4*uint64(len(d.X)) + 1
}

func (d *SegmentationData) Decode(r *codec.Reader) {
	d.Position = r.ReadU8()
	d.Quality = r.ReadU8()
	n := int(r.ReadU8())
	if n > 0 && r.Err == nil {
		d.X = make([]uint16, n)
		d.Y = make([]uint16, n)
		for i := 0; i < n; i++ {
			d.X[i] = r.ReadU16()
			d.Y[i] = r.ReadU16()
		}
	}
	d.Orientation = r.ReadU8()
}

func (d *SegmentationData) Encode(w *codec.Writer) {
	if len(d.X) != len(d.Y) {
		w.Fail(errors.Wrapf(ErrCoordinateMismatch, "%d X, %d Y", len(d.X), len(d.Y)))
		return
	}
	w.WriteU8(d.Position)
	w.WriteU8(d.Quality)
	w.WriteCountU8(len(d.X))
	for i := range d.X {
		w.WriteU16(d.X[i])
		w.WriteU16(d.Y[i])
	}
	w.WriteU8(d.Orientation)
}

// SegmentationBlock is the tagged container of segmentation points.
type SegmentationBlock struct {
	AlgorithmVendorID        uint16
	AlgorithmID              uint16
	QualityScore             uint8
	QualityAlgorithmID       uint16
	QualityAlgorithmVendorID uint16
	Segments                 []SegmentationData

	declared uint16
}

// DeclaredLength is the length field read from the wire, zero for blocks
// that were not decoded.
func (b *SegmentationBlock) DeclaredLength() uint16 {
	return b.declared
}

// Clone returns a deep copy of b, including every segment's coordinates.
func (b *SegmentationBlock) Clone() *SegmentationBlock {
	if b == nil {
		return nil
	}
	c := *b
	c.Segments = slices.Clone(b.Segments)
	for i := range c.Segments {
		c.Segments[i].X = slices.Clone(c.Segments[i].X)
		c.Segments[i].Y = slices.Clone(c.Segments[i].Y)
	}
	return &c
}

func (b *SegmentationBlock) Length() uint64 {
	n := uint64(segmentationFixedLength)
	for i := range b.Segments {
		n += b.Segments[i].Length()
	}
	return n
}

func (b *SegmentationBlock) Decode(r *codec.Reader) {
	if tag := r.ReadU16(); tag != TagSegmentation && r.Err == nil {
		r.Fail(errors.Wrapf(ErrUnexpectedTag, "segmentation block has tag %#04x", tag))
		return
	}
	b.declared = r.ReadU16()
	b.AlgorithmVendorID = r.ReadU16()
	b.AlgorithmID = r.ReadU16()
	b.QualityScore = r.ReadU8()
	b.QualityAlgorithmID = r.ReadU16()
	b.QualityAlgorithmVendorID = r.ReadU16()
	n := int(r.ReadU8())
	if n > 0 && r.Err == nil {
		b.Segments = make([]SegmentationData, n)
		for i := range b.Segments {
			b.Segments[i].Decode(r)
		}
	}
}

func (b *SegmentationBlock) Encode(w *codec.Writer) {
	w.WriteU16(TagSegmentation)
	w.WriteLengthU16(b.Length())
	w.WriteU16(b.AlgorithmVendorID)
	w.WriteU16(b.AlgorithmID)
	w.WriteU8(b.QualityScore)
	w.WriteU16(b.QualityAlgorithmID)
	w.WriteU16(b.QualityAlgorithmVendorID)
	w.WriteCountU8(len(b.Segments))
	for i := range b.Segments {
		b.Segments[i].Encode(w)
	}
}

// AnnotationDataLength is the wire size of one annotation entry.
const AnnotationDataLength = 2

// AnnotationData flags one position with an annotation code.
type AnnotationData struct {
	Position uint8
	Code     uint8
}

func (d *AnnotationData) Length() uint64 {
	return AnnotationDataLength
}

func (d *AnnotationData) Decode(r *codec.Reader) {
	d.Position = r.ReadU8()
	d.Code = r.ReadU8()
}

func (d *AnnotationData) Encode(w *codec.Writer) {
	w.WriteU8(d.Position)
	w.WriteU8(d.Code)
}

// AnnotationBlock is the tagged container of annotation entries.
type AnnotationBlock struct {
	Entries []AnnotationData

	declared uint16
}

// DeclaredLength is the length field read from the wire.
func (b *AnnotationBlock) DeclaredLength() uint16 {
	return b.declared
}

func (b *AnnotationBlock) Clone() *AnnotationBlock {
	if b == nil {
		return nil
	}
	c := *b
	c.Entries = slices.Clone(b.Entries)
	return &c
}

func (b *AnnotationBlock) Length() uint64 {
	return 5 + uint64(len(b.Entries))*AnnotationDataLength
}

func (b *AnnotationBlock) Decode(r *codec.Reader) {
	if tag := r.ReadU16(); tag != TagAnnotation && r.Err == nil {
		r.Fail(errors.Wrapf(ErrUnexpectedTag, "annotation block has tag %#04x", tag))
		return
	}
	b.declared = r.ReadU16()
	n := int(r.ReadU8())
	if n > 0 && r.Err == nil {
		b.Entries = make([]AnnotationData, n)
		for i := range b.Entries {
			b.Entries[i].Decode(r)
		}
	}
}

func (b *AnnotationBlock) Encode(w *codec.Writer) {
	w.WriteU16(TagAnnotation)
	w.WriteLengthU16(b.Length())
	w.WriteCountU8(len(b.Entries))
	for i := range b.Entries {
		b.Entries[i].Encode(w)
	}
}

// CommentBlock is an opaque tagged payload. Its declared length is the only
// one trusted on decode.
type CommentBlock struct {
	Tag  uint16
	Data []byte
}

// IsCommentTag reports whether tag falls in the comment range.
func IsCommentTag(tag uint16) bool {
	return tag >= CommentTagMin && tag <= CommentTagMax
}

func (c *CommentBlock) Length() uint64 {
	return 4 + uint64(len(c.Data))
}

func (c *CommentBlock) Decode(r *codec.Reader) {
	c.Tag = r.ReadU16()
	declared := r.ReadU16()
	if r.Err != nil {
		return
	}
	if declared < 4 {
		r.Fail(errors.Wrapf(ErrMalformedBlock, "comment %#04x declares length %d", c.Tag, declared))
		return
	}
	c.Data = r.ReadBytes(int(declared) - 4)
}

func (c *CommentBlock) Encode(w *codec.Writer) {
	w.WriteU16(c.Tag)
	w.WriteLengthU16(c.Length())
	w.WriteBytes(c.Data)
}

// ExtendedBlocks holds the optional blocks that follow the image data.
type ExtendedBlocks struct {
	Segmentation *SegmentationBlock
	Annotation   *AnnotationBlock
	Comments     []CommentBlock
}

// Clone returns a deep copy of e.
func (e *ExtendedBlocks) Clone() ExtendedBlocks {
	c := ExtendedBlocks{
		Segmentation: e.Segmentation.Clone(),
		Annotation:   e.Annotation.Clone(),
		Comments:     slices.Clone(e.Comments),
	}
	for i := range c.Comments {
		c.Comments[i].Data = slices.Clone(c.Comments[i].Data)
	}
	return c
}

// Empty reports whether no extended block is present.
func (e *ExtendedBlocks) Empty() bool {
	return e.Segmentation == nil && e.Annotation == nil && len(e.Comments) == 0
}

func (e *ExtendedBlocks) Length() uint64 {
	var n uint64
	if e.Segmentation != nil {
		n += e.Segmentation.Length()
	}
	if e.Annotation != nil {
		n += e.Annotation.Length()
	}
	for i := range e.Comments {
		n += e.Comments[i].Length()
	}
	return n
}

// Encode writes segmentation, annotation, then comments in slice order.
func (e *ExtendedBlocks) Encode(w *codec.Writer) {
	if e.Segmentation != nil {
		e.Segmentation.Encode(w)
	}
	if e.Annotation != nil {
		e.Annotation.Encode(w)
	}
	for i := range e.Comments {
		e.Comments[i].Encode(w)
	}
}
