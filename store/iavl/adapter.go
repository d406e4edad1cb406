/*
Package iavl provides the persistent commit store backing the chain
state. The working state lives in an iavl mutable tree over a goleveldb
database, every Commit saves a new immutable version.
*/
package iavl

import (
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of iavl nodes kept in memory.
const DefaultCacheSize = 10000

// DefaultHistorySize is the number of versions kept on disk.
// Zero means all versions are kept.
const DefaultHistorySize = 0

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	numHistory int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) CommitStore {
	db, err := dbm.NewGoLevelDB(name, path)
	if err != nil {
		panic(err)
	}
	return NewCommitStoreFromDB(db)
}

// MockCommitStore creates a new in-memory store, for use in tests.
func MockCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB wraps any tendermint database into a commit store.
func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{
		tree:       tree,
		numHistory: DefaultHistorySize,
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	version := s.tree.Version()
	_, val := s.tree.GetVersioned(key, version)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	// Release an old version of history
	if s.numHistory > 0 && (s.numHistory < version) {
		toRelease := version - s.numHistory
		if err := s.tree.DeleteVersion(toRelease); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "cannot release version %d: %s", toRelease, err)
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap wraps the working state in a btree cache.
// Writing the cache modifies the working tree, which is persisted
// only on the following Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapped version of the tree.
//
// Data written here is stored in the tree, not persisted
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter converts the working iavl.Tree to match these interfaces
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops atomically
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// CacheWrap wraps us once again, with btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(a.collect(start, end, true)), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(a.collect(start, end, false)), nil
}

func (a adapter) collect(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return res
}
