// Package iris implements the iris image record (format "IIR", version 020).
//
// The representation header extends bdir.CaptureInfo with the eye label,
// image type, format and packed properties, dimensions, range, roll angle
// and the iris centre and diameter bounds. The body is the image data only.
package iris
