package interchange

import (
	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/finger"
	"github.com/ssargent/bdirkit/pkg/iris"
)

// ErrEmpty is returned when a Decoded holds no record.
var ErrEmpty = errors.New("no decoded record")

// Decoded holds exactly one of Finger or Iris.
type Decoded struct {
	Selector Selector
	Finger   *finger.Record
	Iris     *iris.Record
}

// Decode reads data with the decoder sel names. The selector is checked
// before any byte is read.
func Decode(data []byte, sel Selector, opts bdir.DecodeOptions) (*Decoded, error) {
	if err := sel.Check(); err != nil {
		return nil, err
	}

	d := &Decoded{Selector: sel}
	var err error
	switch sel.Modality {
	case bdir.ModalityFinger:
		d.Finger, err = finger.Decode(data, opts)
	case bdir.ModalityIris:
		d.Iris, err = iris.Decode(data, opts)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", sel)
	}
	return d, nil
}

// Encode serializes the held record. Lengths, counts and flags are
// recomputed, so a record decoded without loss encodes to the same bytes.
func (d *Decoded) Encode() ([]byte, error) {
	switch {
	case d == nil:
		return nil, ErrEmpty
	case d.HeaderOnly():
		return nil, errors.Wrapf(bdir.ErrHeaderOnly, "encode %s", d.Selector)
	case d.Finger != nil:
		return finger.Marshal(d.Finger)
	case d.Iris != nil:
		return iris.Marshal(d.Iris)
	}
	return nil, ErrEmpty
}

// Validate runs the modality validator for purpose.
func (d *Decoded) Validate(purpose bdir.Purpose) error {
	switch {
	case d == nil:
		return ErrEmpty
	case d.Finger != nil:
		return finger.DefaultValidator.Validate(d.Finger, purpose)
	case d.Iris != nil:
		return iris.DefaultValidator.Validate(d.Iris, purpose)
	}
	return ErrEmpty
}

// Header returns the general header of the held record.
func (d *Decoded) Header() *bdir.GeneralHeader {
	switch {
	case d == nil:
		return nil
	case d.Finger != nil:
		return &d.Finger.Header
	case d.Iris != nil:
		return &d.Iris.Header
	}
	return nil
}

// HeaderOnly reports whether the record was decoded without its body.
func (d *Decoded) HeaderOnly() bool {
	switch {
	case d == nil:
		return false
	case d.Finger != nil:
		rep := d.Finger.Representation()
		return rep != nil && rep.Body == nil
	case d.Iris != nil:
		rep := d.Iris.Representation()
		return rep != nil && rep.Body == nil
	}
	return false
}
