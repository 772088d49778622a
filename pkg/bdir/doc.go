// Package bdir holds the parts of an ISO/IEC 19794 biometric data
// interchange record that finger and iris records share.
//
// A record is a 16-byte GeneralHeader followed by one representation. Each
// representation starts with a CaptureInfo prefix (declared length, capture
// time, device identifiers, quality blocks and, when the general header's
// certification flag is set, certification blocks) and continues with
// modality-specific fields defined by the finger and iris packages.
//
// Lengths are never trusted on decode. Every structure recomputes its
// Length from its content, and Encode writes the recomputed value. The only
// exception is CommentBlock, whose payload size can only come from its
// declared length.
//
// Finger records may carry extended data blocks after the image:
//
//	image | segmentation? | annotation? | comment*
//
// DecodeExtendedBlocks reads them with a state machine that enforces this
// order. Any failure in that phase is logged and returned as a
// MalformedTrailerWarning together with the blocks parsed before it, so a
// damaged trailer never fails the record.
//
// Coded fields (positions, compression, device technology) are stored as
// raw integers. Unknown values decode without error and are left to the
// validators.
package bdir
