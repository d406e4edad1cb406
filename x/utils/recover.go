package utils

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// Recovery converts panics in the wrapped handler into ErrPanic errors.
type Recovery struct{}

var _ crosspile.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (_ *crosspile.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (_ *crosspile.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
