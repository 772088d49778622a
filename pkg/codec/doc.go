// Package codec provides the byte-level primitives shared by every BDIR
// structure in bdirkit.
//
// The package implements a small record contract modelled on nested binary
// serializers: every structure knows its own length, can read itself from a
// Reader and can write itself to a Writer. Structures nest, and only the
// top-level caller checks for errors.
//
// # Wire Conventions
//
// All multi-byte integers in ISO/IEC 19794 records are unsigned and
// big-endian. Reader and Writer expose exactly the widths the records use:
//
//	ReadU8 / WriteU8     one byte (counts, codes, flags)
//	ReadU16 / WriteU16   two bytes (vendor ids, sampling rates, tags)
//	ReadU32 / WriteU32   four bytes (record and image lengths)
//
// # Error Handling
//
// Reader and Writer are sticky: the first failure is stored in the Err field
// and every later call becomes a no-op returning zero values. A short read
// produces a *TruncatedInputError, which matches ErrTruncatedInput:
//
//	r := codec.NewReader(data)
//	hdr.Decode(r)
//	if errors.Is(r.Err, codec.ErrTruncatedInput) {
//	    return nil, r.Err
//	}
//
// Encoders report fields that cannot be represented (a count above 255, a
// payload longer than its length field) through Writer.Fail with
// ErrCountOverflow.
//
// # Length Invariant
//
// Length is always computed from the current field values. Marshal encodes a
// record and verifies that the number of bytes written equals Length,
// returning ErrLengthMismatch otherwise:
//
//	data, err := codec.Marshal(record)
//	if err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Reader and Writer are not safe for concurrent use. Each decode or encode
// call should use its own cursor; separate calls share no state.
package codec
