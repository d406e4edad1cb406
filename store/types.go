package store

import "github.com/iov-one/crosspile"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = crosspile.ReadOnlyKVStore
	SetDeleter       = crosspile.SetDeleter
	KVStore          = crosspile.KVStore
	Batch            = crosspile.Batch
	Iterator         = crosspile.Iterator
	CacheableKVStore = crosspile.CacheableKVStore
	KVCacheWrap      = crosspile.KVCacheWrap
	CommitKVStore    = crosspile.CommitKVStore
	CommitID         = crosspile.CommitID
	Model            = crosspile.Model
)

// Pair constructs a model from a key-value pair
var Pair = crosspile.Pair
