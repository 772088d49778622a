// Package finger implements the finger image record (format "FIR", version
// 020).
//
// A representation header extends bdir.CaptureInfo with the finger
// position, scale units, sampling rates, bit depth, compression and
// impression codes, and the image dimensions. The body is the image data
// followed by optional segmentation, annotation and comment blocks.
//
//	rec, err := finger.Decode(data, bdir.DecodeOptions{})
//	if err != nil {
//		return err
//	}
//	if err := finger.DefaultValidator.Validate(rec, bdir.PurposeAuth); err != nil {
//		return err
//	}
//	out, err := finger.Marshal(rec)
package finger
