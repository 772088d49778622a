package bdir

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// Extended blocks are read by a small state machine. Segmentation may only
// open the trailer, annotation may follow it, and once a comment is seen
// every remaining block must be a comment.
type trailerState int

const (
	trailerStart trailerState = iota
	trailerAfterSegmentation
	trailerAfterAnnotation
	trailerComments
)

func (s trailerState) String() string {
	switch s {
	case trailerStart:
		return "start"
	case trailerAfterSegmentation:
		return "segmentation"
	case trailerAfterAnnotation:
		return "annotation"
	case trailerComments:
		return "comments"
	}
	return "unknown"
}

type trailerToken int

const (
	tokenUnknown trailerToken = iota
	tokenSegmentation
	tokenAnnotation
	tokenComment
)

func classifyTag(tag uint16) trailerToken {
	switch {
	case tag == TagSegmentation:
		return tokenSegmentation
	case tag == TagAnnotation:
		return tokenAnnotation
	case IsCommentTag(tag):
		return tokenComment
	}
	return tokenUnknown
}

var trailerTransitions = map[trailerState]map[trailerToken]trailerState{
	trailerStart: {
		tokenSegmentation: trailerAfterSegmentation,
		tokenAnnotation:   trailerAfterAnnotation,
		tokenComment:      trailerComments,
	},
	trailerAfterSegmentation: {
		tokenAnnotation: trailerAfterAnnotation,
		tokenComment:    trailerComments,
	},
	trailerAfterAnnotation: {
		tokenComment: trailerComments,
	},
	trailerComments: {
		tokenComment: trailerComments,
	},
}

// DecodeExtendedBlocks parses the trailer held in data, which starts at
// offset base of the enclosing buffer. It returns the blocks parsed before
// any failure and the number of bytes they occupy. A failure never aborts
// the enclosing decode: it is logged and returned as a warning.
func DecodeExtendedBlocks(data []byte, base int, log *slog.Logger) (ExtendedBlocks, int, *MalformedTrailerWarning) {
	if log == nil {
		log = slog.Default()
	}

	var blocks ExtendedBlocks
	r := codec.NewReader(data)
	state := trailerStart

	fail := func(start int, tag uint16, err error) (ExtendedBlocks, int, *MalformedTrailerWarning) {
		warn := &MalformedTrailerWarning{Offset: base + start, Tag: tag, Err: err}
		log.Warn("ignoring malformed extended data",
			"offset", warn.Offset,
			"tag", tag,
			"parsed_segmentation", blocks.Segmentation != nil,
			"parsed_annotation", blocks.Annotation != nil,
			"parsed_comments", len(blocks.Comments),
			"error", err)
		return blocks, start, warn
	}

	for r.Len() > 0 {
		start := r.Offset()
		tag, ok := r.PeekU16()
		if !ok {
			return fail(start, 0, &codec.TruncatedInputError{Offset: base + start, Needed: 2, Available: r.Len()})
		}

		tok := classifyTag(tag)
		next, ok := trailerTransitions[state][tok]
		if !ok {
			return fail(start, tag, errors.Wrapf(ErrUnexpectedTag, "tag %#04x after %s", tag, state))
		}

		switch tok {
		case tokenSegmentation:
			seg := &SegmentationBlock{}
			seg.Decode(r)
			if r.Err == nil {
				blocks.Segmentation = seg
				checkDeclared(log, tag, seg.DeclaredLength(), seg.Length())
			}
		case tokenAnnotation:
			ann := &AnnotationBlock{}
			ann.Decode(r)
			if r.Err == nil {
				blocks.Annotation = ann
				checkDeclared(log, tag, ann.DeclaredLength(), ann.Length())
			}
		case tokenComment:
			var c CommentBlock
			c.Decode(r)
			if r.Err == nil {
				blocks.Comments = append(blocks.Comments, c)
			}
		}
		if r.Err != nil {
			return fail(start, tag, r.Err)
		}
		state = next
	}
	return blocks, r.Offset(), nil
}

func checkDeclared(log *slog.Logger, tag, declared uint16, computed uint64) {
	if uint64(declared) != computed {
		log.Debug("extended block declared length differs from content",
			"tag", tag, "declared", declared, "computed", computed)
	}
}
