package utils

import (
	"context"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

func TestActionTagger(t *testing.T) {
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "challenge/reveal"}}
	db := store.MemStore()

	res, err := NewActionTagger().Deliver(context.Background(), db, tx, &weavetest.Handler{})
	require.NoError(t, err)
	assert.Equal(t, []common.KVPair{{Key: []byte(ActionKey), Value: []byte("challenge/reveal")}}, res.Tags)

	failing := &weavetest.Handler{DeliverErr: errors.ErrUnauthorized}
	_, err = NewActionTagger().Deliver(context.Background(), db, tx, failing)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestKeyTagger(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, db.Set([]byte("old"), []byte("1")))

	h := &mutatingHandler{
		set:    [][]byte{[]byte("b"), []byte("a")},
		delete: [][]byte{[]byte("old")},
	}
	res, err := NewKeyTagger().Deliver(context.Background(), db, nil, h)
	require.NoError(t, err)

	want := []common.KVPair{
		{Key: []byte("a"), Value: tagSet},
		{Key: []byte("b"), Value: tagSet},
		{Key: []byte("old"), Value: tagDelete},
	}
	assert.Equal(t, want, res.Tags)
}

func TestKeyTaggerWithSavepoint(t *testing.T) {
	db := store.MemStore()
	h := weavetest.Decorate(writeHandler{key: []byte("k"), value: []byte("v")}, NewSavepoint().OnDeliver())

	res, err := NewKeyTagger().Deliver(context.Background(), db, nil, h)
	require.NoError(t, err)
	assert.Equal(t, []common.KVPair{{Key: []byte("k"), Value: tagSet}}, res.Tags)
}

func TestLoggingPassesResults(t *testing.T) {
	ctx := crosspile.WithLogger(context.Background(), log.TestingLogger())
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "cash/transfer"}}
	h := &weavetest.Handler{DeliverErr: errors.ErrInsufficientAmount}

	_, err := NewLogging().Check(ctx, store.MemStore(), tx, h)
	assert.NoError(t, err)
	_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, h)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	assert.Equal(t, 2, h.CallCount())
}

type mutatingHandler struct {
	set    [][]byte
	delete [][]byte
}

func (h *mutatingHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	return &crosspile.CheckResult{}, nil
}

func (h *mutatingHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	for _, k := range h.set {
		if err := db.Set(k, []byte("value")); err != nil {
			return nil, err
		}
	}
	for _, k := range h.delete {
		if err := db.Delete(k); err != nil {
			return nil, err
		}
	}
	return &crosspile.DeliverResult{}, nil
}
