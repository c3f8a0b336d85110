package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/apestrap/errors"
)

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Valid implements Iterator and returns true iff it can be read
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrDatabase, "iterator passed end of slice")
	}
	s.idx++
	return nil
}

// Key returns the key of the cursor.
func (s *SliceIterator) Key() (key []byte) {
	if !s.Valid() {
		return nil
	}
	return s.data[s.idx].Key
}

// Value returns the value of the cursor.
func (s *SliceIterator) Value() (value []byte) {
	if !s.Valid() {
		return nil
	}
	return s.data[s.idx].Value
}

// Close releases the Iterator.
func (s *SliceIterator) Close() {
	s.data = nil
}

// ReadAll consumes the iterator and returns all models in iteration
// order. The iterator is closed afterwards.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Close()
	var res []Model
	for it.Valid() {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// collectBtree returns all cached items within [start, end) in ascending
// order.
func collectBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// mergeItems combines the ascending parent models with the cached items.
// Cached values override the parent and deleted items hide it.
func mergeItems(parent []Model, cached []keyer) []Model {
	res := make([]Model, 0, len(parent)+len(cached))
	i, j := 0, 0
	for i < len(parent) || j < len(cached) {
		var cmp int
		switch {
		case i == len(parent):
			cmp = 1
		case j == len(cached):
			cmp = -1
		default:
			cmp = bytes.Compare(parent[i].Key, cached[j].Key())
		}

		if cmp < 0 {
			res = append(res, parent[i])
			i++
			continue
		}
		if cmp == 0 {
			i++
		}
		if set, ok := cached[j].(setItem); ok {
			res = append(res, Model{Key: set.key, Value: set.value})
		}
		j++
	}
	return res
}

func reverseModels(ms []Model) []Model {
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
	return ms
}
