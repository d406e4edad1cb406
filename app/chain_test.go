package app_test

import (
	"context"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/app"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/iov-one/crosspile/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicAt is a decorator that panics at the given height.
type panicAt int64

func (p panicAt) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	if h, _ := crosspile.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAt) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	if h, _ := crosspile.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	var (
		c1 = &weavetest.Decorator{}
		c2 = &weavetest.Decorator{}
		c3 = &weavetest.Decorator{}
		h  = &weavetest.Handler{}
	)
	var skipped *weavetest.Decorator

	stack := app.ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		c2,
		panicAt(6),
		skipped,
		c3,
	).WithHandler(h)

	bg := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(bg, db, tx)
	assert.NoError(t, err)
	ctx := crosspile.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, db, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// the panic is turned into an error by the recovery decorator
	ctx = crosspile.WithHeight(bg, 8)
	_, err = stack.Check(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// nothing below the panic is reached
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAppend(t *testing.T) {
	first := &weavetest.Decorator{}
	base := app.ChainDecorators(first)
	failing := base.Chain(&weavetest.Decorator{CheckErr: errors.ErrUnauthorized})

	h := &weavetest.Handler{}
	_, err := failing.WithHandler(h).Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())

	// the original chain is not modified by Chain
	_, err = base.WithHandler(h).Check(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.NoError(t, err)
	assert.Equal(t, 1, h.CallCount())
	assert.Equal(t, 2, first.CallCount())
}
