package store

import "github.com/iov-one/safesend"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = safesend.ReadOnlyKVStore
type KVStore = safesend.KVStore
type SetDeleter = safesend.SetDeleter
type Batch = safesend.Batch
type Iterator = safesend.Iterator
type Model = safesend.Model
type CacheableKVStore = safesend.CacheableKVStore
type KVCacheWrap = safesend.KVCacheWrap
