package interchange

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// Version names a supported record standard revision.
type Version string

const (
	VersionFinger2011 Version = "ISO19794_4_2011"
	VersionIris2011   Version = "ISO19794_6_2011"
)

// ErrUnsupportedVersion is the sentinel behind UnsupportedVersionError.
var ErrUnsupportedVersion = errors.New("unsupported modality version")

// UnsupportedVersionError is returned when a Selector names a modality and
// version pair this package cannot decode.
type UnsupportedVersionError struct {
	Selector Selector
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version %q for modality %q", e.Selector.Version, e.Selector.Modality)
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// Selector picks the decoder for a record.
type Selector struct {
	Modality bdir.Modality
	Version  Version
}

// DefaultSelector returns the selector for the only supported version of m.
func DefaultSelector(m bdir.Modality) Selector {
	switch m {
	case bdir.ModalityFinger:
		return Selector{Modality: m, Version: VersionFinger2011}
	case bdir.ModalityIris:
		return Selector{Modality: m, Version: VersionIris2011}
	}
	return Selector{Modality: m}
}

// ParseSelector parses a modality name and an optional version. An empty
// version selects the modality's default.
func ParseSelector(modality, version string) (Selector, error) {
	m, err := bdir.ParseModality(modality)
	if err != nil {
		return Selector{}, err
	}
	if version == "" {
		return DefaultSelector(m), nil
	}
	sel := Selector{Modality: m, Version: Version(strings.ToUpper(strings.TrimSpace(version)))}
	if err := sel.Check(); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

// Check reports whether s names a supported pair.
func (s Selector) Check() error {
	switch {
	case s.Modality == bdir.ModalityFinger && s.Version == VersionFinger2011:
		return nil
	case s.Modality == bdir.ModalityIris && s.Version == VersionIris2011:
		return nil
	}
	return &UnsupportedVersionError{Selector: s}
}

func (s Selector) String() string {
	return string(s.Modality) + "/" + string(s.Version)
}

// Detect guesses the modality from the format identifier at the start of
// data.
func Detect(data []byte) (bdir.Modality, error) {
	if len(data) < 4 {
		return "", errors.Wrap(bdir.ErrUnknownModality, "record shorter than its format identifier")
	}
	id := binary.BigEndian.Uint32(data)
	switch id {
	case bdir.FormatFinger:
		return bdir.ModalityFinger, nil
	case bdir.FormatIris:
		return bdir.ModalityIris, nil
	}
	return "", errors.Wrapf(bdir.ErrUnknownModality, "format identifier %#08x", id)
}
