package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// IDLength is the size of an identifier handed out by a Sequence.
const IDLength = 8

// Sequence hands out increasing identifiers. The state is kept under
//
//	_s.<bucket>:<name>
//
// The first identifier is 1, so that zero never names a stored entity.
type Sequence struct {
	key []byte
}

// NewSequence returns the sequence called name that belongs to bucket.
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// Next allocates the following identifier and returns it encoded.
func (s Sequence) Next(db apestrap.KVStore) ([]byte, error) {
	n, err := s.Current(db)
	if err != nil {
		return nil, err
	}
	if n == math.MaxUint64 {
		return nil, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.key)
	}
	id := EncodeID(n + 1)
	if err := db.Set(s.key, id); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return id, nil
}

// Current returns the last allocated identifier, zero if none was.
func (s Sequence) Current(db apestrap.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return 0, nil
	}
	n, err := DecodeID(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrState, "sequence %s: %s", s.key, err)
	}
	return n, nil
}

// EncodeID writes n as big endian bytes. Byte order of the result
// matches numeric order.
func EncodeID(n uint64) []byte {
	raw := make([]byte, IDLength)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// DecodeID parses an identifier written by EncodeID.
func DecodeID(raw []byte) (uint64, error) {
	if len(raw) != IDLength {
		return 0, errors.Wrapf(errors.ErrInput, "id must be %d bytes, got %d", IDLength, len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
