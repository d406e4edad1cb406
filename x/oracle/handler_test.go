package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/app"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/iov-one/crosspile/weavetest/assert"
)

func TestHandlers(t *testing.T) {
	authority := weavetest.NewCondition()
	oracle := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	req, _, err := RequesterAddress(authority.Address(), 9)
	assert.Nil(t, err)
	value := bytes.Repeat([]byte{3}, RandomLength)
	initMsg := &InitializeMsg{Authority: authority.Address(), Oracle: oracle.Address(), Seed: 9}

	type step struct {
		msg     crosspile.Msg
		signer  crosspile.Condition
		wantErr *errors.Error
	}

	cases := map[string]struct {
		steps         []step
		wantFulfilled bool
	}{
		"request and publish": {
			steps: []step{
				{msg: initMsg, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority},
				{msg: &PublishRandomMsg{Requester: req, Random: value}, signer: oracle},
			},
			wantFulfilled: true,
		},
		"initialize requires the authority": {
			steps: []step{
				{msg: initMsg, signer: stranger, wantErr: errors.ErrUnauthorized},
			},
		},
		"publish requires the oracle": {
			steps: []step{
				{msg: initMsg, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority},
				{msg: &PublishRandomMsg{Requester: req, Random: value}, signer: authority, wantErr: errors.ErrUnauthorized},
			},
		},
		"publish of a short value": {
			steps: []step{
				{msg: initMsg, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority},
				{msg: &PublishRandomMsg{Requester: req, Random: value[:10]}, signer: oracle, wantErr: errors.ErrInput},
			},
		},
		"double request": {
			steps: []step{
				{msg: initMsg, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority, wantErr: ErrRequestInFlight},
			},
		},
		"transferred authority": {
			steps: []step{
				{msg: initMsg, signer: authority},
				{msg: &TransferAuthorityMsg{Requester: req, NewAuthority: stranger.Address()}, signer: authority},
				{msg: &RequestRandomMsg{Requester: req}, signer: authority, wantErr: errors.ErrUnauthorized},
				{msg: &RequestRandomMsg{Requester: req}, signer: stranger},
				{msg: &PublishRandomMsg{Requester: req, Random: value}, signer: oracle},
			},
			wantFulfilled: true,
		},
		"unknown requester": {
			steps: []step{
				{msg: &RequestRandomMsg{Requester: req}, signer: authority, wantErr: errors.ErrNotFound},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController()
			router := app.NewRouter()
			auth := &weavetest.CtxAuth{Key: "auth"}
			RegisterRoutes(router, auth, control)

			for i, s := range tc.steps {
				ctx := auth.SetConditions(context.Background(), s.signer)
				tx := &weavetest.Tx{Msg: s.msg}

				cache := db.CacheWrap()
				_, checkErr := router.Check(ctx, cache, tx)
				cache.Discard()
				_, deliverErr := router.Deliver(ctx, db, tx)

				if s.wantErr != nil {
					assert.IsErr(t, s.wantErr, checkErr)
					assert.IsErr(t, s.wantErr, deliverErr)
					continue
				}
				if checkErr != nil {
					t.Fatalf("step %d: check: %+v", i, checkErr)
				}
				if deliverErr != nil {
					t.Fatalf("step %d: deliver: %+v", i, deliverErr)
				}
			}

			if tc.wantFulfilled {
				got, err := control.ReadValue(db, req)
				assert.Nil(t, err)
				assert.Equal(t, value, got)
			}
		})
	}
}

func TestGenesis(t *testing.T) {
	authority := weavetest.NewCondition().Address()
	oracle := weavetest.NewCondition().Address()

	genesis := fmt.Sprintf(`{"oracle": {"requesters": [{"authority": "%s", "oracle": "%s", "seed": 4}]}}`, authority, oracle)
	var opts crosspile.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	req, _, err := RequesterAddress(authority, 4)
	assert.Nil(t, err)
	r, err := NewController().Get(db, req)
	assert.Nil(t, err)
	assert.Equal(t, oracle, r.Oracle)

	qr := crosspile.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/requesters").Query(db, crosspile.KeyQueryMod, req)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
}
