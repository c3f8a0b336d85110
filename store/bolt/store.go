package bolt

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/store"
	"go.etcd.io/bbolt"
)

var (
	bucketData = []byte("data")
	bucketMeta = []byte("meta")

	keyVersion = []byte("version")
	keyHash    = []byte("hash")
)

// CommitStore keeps committed state in a bbolt database. Writes are
// collected in memory and flushed in a single bolt transaction on Commit.
type CommitStore struct {
	db      *bbolt.DB
	pending store.BTreeCacheWrap
	ops     *store.NonAtomicBatch
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens or creates the database at path.
func NewCommitStore(path string) (*CommitStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create directory: %s", err)
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open bolt db: %s", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketData, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return errors.Wrapf(errors.ErrDatabase, "create bucket %q: %s", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &CommitStore{db: db}
	s.reset()
	return s, nil
}

func (s *CommitStore) reset() {
	s.ops = store.NewNonAtomicBatch(nil)
	s.pending = store.NewBTreeCacheWrap(reader{db: s.db}, s.ops, nil)
}

// Get returns the value including not yet committed changes.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return s.pending.Get(key)
}

// Has returns true if the key exists, including not yet committed changes.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.pending.Has(key)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return s.pending.Iterator(start, end)
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return s.pending.ReverseIterator(start, end)
}

// CacheWrap returns a cache that writes into the pending changes.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.pending.CacheWrap()
}

// Commit flushes all pending changes in one bolt transaction and bumps the
// version. The hash chains the previous hash with every applied operation.
func (s *CommitStore) Commit() (store.CommitID, error) {
	var id store.CommitID
	err := s.db.Update(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketData)
		meta := tx.Bucket(bucketMeta)

		h := sha256.New()
		h.Write(meta.Get(keyHash))
		for _, op := range s.ops.ShowOps() {
			h.Write([]byte(op.String()))
			if err := op.Apply(bucketWriter{b: data}); err != nil {
				return err
			}
		}

		id.Version = readVersion(meta) + 1
		id.Hash = h.Sum(nil)
		if err := meta.Put(keyVersion, encodeVersion(id.Version)); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "put version: %s", err)
		}
		if err := meta.Put(keyHash, id.Hash); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "put hash: %s", err)
		}
		return nil
	})
	if err != nil {
		return store.CommitID{}, err
	}
	s.reset()
	return id, nil
}

// LoadLatestVersion drops all pending changes. Bolt only ever exposes the
// last committed state.
func (s *CommitStore) LoadLatestVersion() error {
	s.reset()
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	var id store.CommitID
	err := s.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		id.Version = readVersion(meta)
		id.Hash = copyBytes(meta.Get(keyHash))
		return nil
	})
	return id, err
}

// Close closes the underlying database.
func (s *CommitStore) Close() error {
	return s.db.Close()
}

func readVersion(meta *bbolt.Bucket) int64 {
	raw := meta.Get(keyVersion)
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func encodeVersion(v int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(v))
	return raw
}

// bolt returned slices are only valid during the transaction
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cpy := make([]byte, len(b))
	copy(cpy, b)
	return cpy
}

// bucketWriter applies ops to a bolt bucket
type bucketWriter struct {
	b *bbolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	if err := w.b.Put(key, value); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "put: %s", err)
	}
	return nil
}

func (w bucketWriter) Delete(key []byte) error {
	if err := w.b.Delete(key); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete: %s", err)
	}
	return nil
}

// reader exposes the committed data bucket as a read only store
type reader struct {
	db *bbolt.DB
}

var _ store.ReadOnlyKVStore = reader{}

func (r reader) Get(key []byte) ([]byte, error) {
	var val []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		val = copyBytes(tx.Bucket(bucketData).Get(key))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	return val, nil
}

func (r reader) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

func (r reader) Iterator(start, end []byte) (store.Iterator, error) {
	models, err := r.collect(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (r reader) ReverseIterator(start, end []byte) (store.Iterator, error) {
	models, err := r.collect(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (r reader) collect(start, end []byte) ([]store.Model, error) {
	var res []store.Model
	err := r.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketData).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			res = append(res, store.Model{Key: copyBytes(k), Value: copyBytes(v)})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
	}
	return res, nil
}
