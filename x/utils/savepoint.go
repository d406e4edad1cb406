package utils

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// Savepoint isolates all writes done by the wrapped handler in a cache
// wrap. The cache is written only if the handler succeeds, so a failed
// transaction never leaves partial state behind.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ crosspile.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. It is a no-op until OnCheck
// or OnDeliver is called.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	cstore, ok := db.(crosspile.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, db, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	cstore, ok := db.(crosspile.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, db, tx)
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}
