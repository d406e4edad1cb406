package utils

import (
	"github.com/iov-one/crosspile"
)

// writeHandler stores a key value pair and returns err afterwards.
type writeHandler struct {
	key, value []byte
	err        error
}

var _ crosspile.Handler = writeHandler{}

func (h writeHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &crosspile.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &crosspile.DeliverResult{}, nil
}

type panicHandler struct{}

var _ crosspile.Handler = panicHandler{}

func (panicHandler) Check(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.DeliverResult, error) {
	panic("deliver panic")
}
