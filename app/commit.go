package app

import (
	"sync"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	mu        sync.Mutex
	committed crosspile.CommitKVStore
	deliver   crosspile.KVCacheWrap
	check     crosspile.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up the
// deliver and check caches.
func NewCommitStore(store crosspile.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (crosspile.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes deliver to the underlying store and persists a new
// version. Both caches are rebuilt on top of the new state, pending check
// state is dropped.
func (cs *CommitStore) Commit() (crosspile.CommitID, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.deliver.Write(); err != nil {
		return crosspile.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, errors.Wrap(err, "commit")
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() crosspile.CacheableKVStore {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() crosspile.CacheableKVStore {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.deliver
}

// QueryStore returns a read view over the last committed state.
func (cs *CommitStore) QueryStore() crosspile.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// _cp: is a prefix for internal application data
const chainIDKey = "_cp:chainID"

// mustLoadChainID returns the chain id stored if any,
// panics on db error
func mustLoadChainID(kv crosspile.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv crosspile.KVStore, chainID string) error {
	if !crosspile.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrImmutable, "chain id is set at genesis")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
