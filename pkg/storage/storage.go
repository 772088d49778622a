package storage

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/fxamacker/cbor/v2"
	"github.com/segmentio/ksuid"
	"github.com/zeebo/blake3"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

var (
	// ErrNotFound is returned for ids with no stored record.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyRecord is returned when Put is given no bytes.
	ErrEmptyRecord = errors.New("empty record")
	// ErrInvalidID is returned by ParseID.
	ErrInvalidID = errors.New("invalid record id")
)

// Key prefixes. Records and metadata are keyed by the raw ksuid bytes, the
// digest index by the raw blake3 sum.
const (
	recordPrefix = "r/"
	metaPrefix   = "m/"
	digestPrefix = "d/"
)

// Meta describes a stored record.
type Meta struct {
	ID       string        `json:"id" yaml:"id" cbor:"id"`
	Modality bdir.Modality `json:"modality" yaml:"modality" cbor:"modality"`
	Digest   string        `json:"digest" yaml:"digest" cbor:"digest"`
	Size     int           `json:"size" yaml:"size" cbor:"size"`
	StoredAt time.Time     `json:"stored_at" yaml:"stored_at" cbor:"stored_at"`
}

// RecordStore archives encoded BDIRs in pebble. Identical bytes are stored
// once and keep their first id.
type RecordStore struct {
	db  *pebble.DB
	enc cbor.EncMode
	now func() time.Time

	// mu serializes the digest lookup with the write that follows it.
	mu sync.Mutex
}

// NewRecordStore opens or creates a store under path.
func NewRecordStore(path string) (*RecordStore, error) {
	enc, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		return nil, errors.Wrap(err, "cbor encoder")
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open record store %s", path)
	}
	return &RecordStore{db: db, enc: enc, now: time.Now}, nil
}

// ParseID parses the string form of a record id.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, errors.Wrapf(ErrInvalidID, "%q", s)
	}
	return id, nil
}

// Digest returns the hex blake3-256 sum of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func key(prefix string, b []byte) []byte {
	return append([]byte(prefix), b...)
}

// Put stores data under a new id, or returns the id and metadata of an
// identical record stored earlier.
func (s *RecordStore) Put(modality bdir.Modality, data []byte) (ksuid.KSUID, Meta, error) {
	if len(data) == 0 {
		return ksuid.Nil, Meta{}, ErrEmptyRecord
	}
	if _, err := bdir.ParseModality(string(modality)); err != nil {
		return ksuid.Nil, Meta{}, err
	}
	sum := blake3.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.get(key(digestPrefix, sum[:]))
	switch {
	case err == nil:
		id, err := ksuid.FromBytes(existing)
		if err != nil {
			return ksuid.Nil, Meta{}, errors.Wrap(err, "corrupt digest index")
		}
		meta, err := s.Meta(id)
		return id, meta, err
	case !errors.Is(err, ErrNotFound):
		return ksuid.Nil, Meta{}, err
	}

	id := ksuid.New()
	meta := Meta{
		ID:       id.String(),
		Modality: modality,
		Digest:   hex.EncodeToString(sum[:]),
		Size:     len(data),
		StoredAt: s.now().UTC(),
	}
	encoded, err := s.enc.Marshal(meta)
	if err != nil {
		return ksuid.Nil, Meta{}, errors.Wrap(err, "encode metadata")
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(key(recordPrefix, id.Bytes()), data, nil); err != nil {
		return ksuid.Nil, Meta{}, err
	}
	if err := b.Set(key(metaPrefix, id.Bytes()), encoded, nil); err != nil {
		return ksuid.Nil, Meta{}, err
	}
	if err := b.Set(key(digestPrefix, sum[:]), id.Bytes(), nil); err != nil {
		return ksuid.Nil, Meta{}, err
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, Meta{}, errors.Wrap(err, "commit record")
	}
	return id, meta, nil
}

// Get returns the stored bytes for id.
func (s *RecordStore) Get(id ksuid.KSUID) ([]byte, error) {
	return s.get(key(recordPrefix, id.Bytes()))
}

// Meta returns the metadata stored with id.
func (s *RecordStore) Meta(id ksuid.KSUID) (Meta, error) {
	raw, err := s.get(key(metaPrefix, id.Bytes()))
	if err != nil {
		return Meta{}, err
	}
	var meta Meta
	if err := cbor.Unmarshal(raw, &meta); err != nil {
		return Meta{}, errors.Wrapf(err, "decode metadata for %s", id)
	}
	return meta, nil
}

// Delete removes the record, its metadata and its digest entry.
func (s *RecordStore) Delete(id ksuid.KSUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.Meta(id)
	if err != nil {
		return err
	}
	sum, err := hex.DecodeString(meta.Digest)
	if err != nil {
		return errors.Wrapf(err, "corrupt digest for %s", id)
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Delete(key(recordPrefix, id.Bytes()), nil); err != nil {
		return err
	}
	if err := b.Delete(key(metaPrefix, id.Bytes()), nil); err != nil {
		return err
	}
	if err := b.Delete(key(digestPrefix, sum), nil); err != nil {
		return err
	}
	return errors.Wrap(b.Commit(pebble.Sync), "commit delete")
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}

// get copies the value out before releasing pebble's buffer.
func (s *RecordStore) get(k []byte) ([]byte, error) {
	v, closer, err := s.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}
