package orm

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/store"
)

// ReadOnlyKVStore is a shorthand used across the package.
type ReadOnlyKVStore = apestrap.ReadOnlyKVStore

// PrefixRange returns the [start, end) range covering all keys that
// start with the prefix. A nil end means the range is unbounded.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}

func queryPrefix(db ReadOnlyKVStore, prefix []byte) ([]apestrap.Model, error) {
	start, end := PrefixRange(prefix)
	itr, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return store.ReadAll(itr)
}
