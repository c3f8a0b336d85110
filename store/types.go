// nolint
package store

import "github.com/iov-one/apestrap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = apestrap.ReadOnlyKVStore
type SetDeleter = apestrap.SetDeleter
type KVStore = apestrap.KVStore
type Batch = apestrap.Batch
type Iterator = apestrap.Iterator
type Model = apestrap.Model
type CacheableKVStore = apestrap.CacheableKVStore
type KVCacheWrap = apestrap.KVCacheWrap
type CommitKVStore = apestrap.CommitKVStore
type CommitID = apestrap.CommitID
