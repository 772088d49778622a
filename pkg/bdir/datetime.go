package bdir

import (
	"time"

	"github.com/ssargent/bdirkit/pkg/codec"
)

// CaptureDateTimeLength is the wire size of a capture timestamp.
const CaptureDateTimeLength = 9

// CaptureDateTime is the 9-byte capture timestamp. Month is zero based in
// memory (0 is January) and written as Month+1.
type CaptureDateTime struct {
	Year        uint16
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	Millisecond uint16
}

// CaptureDateTimeFrom converts t to UTC and truncates it to milliseconds.
func CaptureDateTimeFrom(t time.Time) CaptureDateTime {
	t = t.UTC()
	return CaptureDateTime{
		Year:        uint16(t.Year()),
		Month:       uint8(t.Month() - 1),
		Day:         uint8(t.Day()),
		Hour:        uint8(t.Hour()),
		Minute:      uint8(t.Minute()),
		Second:      uint8(t.Second()),
		Millisecond: uint16(t.Nanosecond() / int(time.Millisecond)),
	}
}

// UnreportedCaptureDateTime returns the all-0xFF "not reported" value.
func UnreportedCaptureDateTime() CaptureDateTime {
	return CaptureDateTime{
		Year:        0xFFFF,
		Month:       0xFE, // written as 0xFF
		Day:         0xFF,
		Hour:        0xFF,
		Minute:      0xFF,
		Second:      0xFF,
		Millisecond: 0xFFFF,
	}
}

// Unreported reports whether every field carries the "not reported" value.
func (d CaptureDateTime) Unreported() bool {
	return d == UnreportedCaptureDateTime()
}

// Time assembles the fields into a UTC time. ok is false when the value is
// unreported or not a real calendar instant.
func (d CaptureDateTime) Time() (t time.Time, ok bool) {
	if d.Month > 11 || d.Day < 1 || d.Day > 31 || d.Hour > 23 || d.Minute > 59 || d.Second > 59 || d.Millisecond > 999 {
		return time.Time{}, false
	}
	t = time.Date(int(d.Year), time.Month(d.Month+1), int(d.Day), int(d.Hour), int(d.Minute), int(d.Second),
		int(d.Millisecond)*int(time.Millisecond), time.UTC)
	if t.Day() != int(d.Day) {
		// 31 February and friends normalize into the next month.
		return time.Time{}, false
	}
	return t, true
}

func (d *CaptureDateTime) Length() uint64 {
	return CaptureDateTimeLength
}

func (d *CaptureDateTime) Decode(r *codec.Reader) {
	d.Year = r.ReadU16()
	d.Month = r.ReadU8() - 1
	d.Day = r.ReadU8()
	d.Hour = r.ReadU8()
	d.Minute = r.ReadU8()
	d.Second = r.ReadU8()
	d.Millisecond = r.ReadU16()
}

func (d *CaptureDateTime) Encode(w *codec.Writer) {
	w.WriteU16(d.Year)
	w.WriteU8(d.Month + 1)
	w.WriteU8(d.Day)
	w.WriteU8(d.Hour)
	w.WriteU8(d.Minute)
	w.WriteU8(d.Second)
	w.WriteU16(d.Millisecond)
}
