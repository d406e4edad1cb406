package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/app"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/iov-one/crosspile/weavetest/assert"
)

func TestHandlers(t *testing.T) {
	type step struct {
		msg     func(f *fixture, id crosspile.Address) crosspile.Msg
		signer  func(f *fixture) crosspile.Condition
		publish byte
		wantErr *errors.Error
	}

	initiator := func(f *fixture) crosspile.Condition { return f.initiator }
	acceptor := func(f *fixture) crosspile.Condition { return f.acceptor }
	stranger := func(*fixture) crosspile.Condition { return weavetest.NewCondition() }

	newChallenge := func(amount uint64) func(*fixture, crosspile.Address) crosspile.Msg {
		return func(f *fixture, _ crosspile.Address) crosspile.Msg {
			return &NewChallengeMsg{Initiator: f.initiator.Address(), Mint: f.m1, Amount: amount, Requester: f.requester}
		}
	}
	accept := func(amount uint64) func(*fixture, crosspile.Address) crosspile.Msg {
		return func(f *fixture, id crosspile.Address) crosspile.Msg {
			return &AcceptChallengeMsg{ChallengeID: id, Acceptor: f.acceptor.Address(), Mint: f.m2, Amount: amount}
		}
	}
	approve := func(_ *fixture, id crosspile.Address) crosspile.Msg { return &ApproveAcceptorWagerMsg{ChallengeID: id} }
	decline := func(_ *fixture, id crosspile.Address) crosspile.Msg { return &DeclineAcceptorWagerMsg{ChallengeID: id} }
	reveal := func(_ *fixture, id crosspile.Address) crosspile.Msg { return &RevealWinnerMsg{ChallengeID: id} }
	cancelBefore := func(_ *fixture, id crosspile.Address) crosspile.Msg { return &CancelBeforeAcceptorMsg{ChallengeID: id} }
	cancelAfter := func(_ *fixture, id crosspile.Address) crosspile.Msg { return &CancelAfterAcceptorMsg{ChallengeID: id} }

	cases := map[string]struct {
		steps []step
		// balances of the initiator and the acceptor, in m1 and m2
		wantInitiator [2]uint64
		wantAcceptor  [2]uint64
		wantOpen      bool
	}{
		"scenario A: acceptor wins": {
			steps: []step{
				{msg: newChallenge(1000), signer: initiator},
				{msg: accept(37), signer: acceptor},
				{msg: approve, signer: initiator},
				{publish: 1},
				{msg: reveal, signer: initiator},
				{msg: reveal, signer: acceptor, wantErr: errors.ErrNotFound},
			},
			wantInitiator: [2]uint64{fund - 1000, 0},
			wantAcceptor:  [2]uint64{1000, fund},
		},
		"scenario B: cancel before acceptor": {
			steps: []step{
				{msg: newChallenge(1000), signer: initiator},
				{msg: cancelBefore, signer: initiator},
			},
			wantInitiator: [2]uint64{fund, 0},
			wantAcceptor:  [2]uint64{0, fund},
		},
		"scenario C: cancel after acceptor": {
			steps: []step{
				{msg: newChallenge(1000), signer: initiator},
				{msg: accept(37), signer: acceptor},
				{msg: cancelAfter, signer: initiator},
			},
			wantInitiator: [2]uint64{fund, 0},
			wantAcceptor:  [2]uint64{0, fund},
		},
		"initiator wins": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(20), signer: acceptor},
				{msg: approve, signer: initiator},
				{msg: reveal, signer: acceptor, wantErr: ErrRandomnessNotReady},
				{publish: 4},
				{msg: reveal, signer: acceptor},
			},
			wantInitiator: [2]uint64{fund, 20},
			wantAcceptor:  [2]uint64{0, fund - 20},
		},
		"new challenge must be signed by the initiator": {
			steps: []step{
				{msg: newChallenge(10), signer: acceptor, wantErr: errors.ErrUnauthorized},
			},
			wantInitiator: [2]uint64{fund, 0},
			wantAcceptor:  [2]uint64{0, fund},
		},
		"accept must be signed by the acceptor": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(5), signer: initiator, wantErr: errors.ErrUnauthorized},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund},
			wantOpen:      true,
		},
		"approve by the acceptor": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(5), signer: acceptor},
				{msg: approve, signer: acceptor, wantErr: errors.ErrUnauthorized},
				{msg: approve, signer: stranger, wantErr: errors.ErrUnauthorized},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund - 5},
			wantOpen:      true,
		},
		"decline then match again": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(5), signer: acceptor},
				{msg: decline, signer: acceptor},
				{msg: decline, signer: initiator, wantErr: ErrNotMatched},
				{msg: accept(7), signer: acceptor},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund - 7},
			wantOpen:      true,
		},
		"insufficient funds": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(fund + 1), signer: acceptor, wantErr: errors.ErrInsufficientAmount},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund},
			wantOpen:      true,
		},
		"initiator short of funds": {
			steps: []step{
				{msg: newChallenge(fund + 1), signer: initiator, wantErr: errors.ErrInsufficientAmount},
			},
			wantInitiator: [2]uint64{fund, 0},
			wantAcceptor:  [2]uint64{0, fund},
		},
		"second challenge of the same initiator": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: newChallenge(20), signer: initiator, wantErr: ErrDuplicateChallenge},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund},
			wantOpen:      true,
		},
		"cancel after approval": {
			steps: []step{
				{msg: newChallenge(10), signer: initiator},
				{msg: accept(5), signer: acceptor},
				{msg: approve, signer: initiator},
				{msg: cancelAfter, signer: initiator, wantErr: ErrAlreadyApproved},
			},
			wantInitiator: [2]uint64{fund - 10, 0},
			wantAcceptor:  [2]uint64{0, fund - 5},
			wantOpen:      true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			id, _, err := ChallengeAddress(f.initiator.Address())
			assert.Nil(t, err)

			router := app.NewRouter()
			auth := &weavetest.CtxAuth{Key: "auth"}
			RegisterRoutes(router, auth, f.control)

			for i, s := range tc.steps {
				if s.msg == nil {
					f.publish(t, s.publish)
					continue
				}
				ctx := crosspile.WithBlockTime(context.Background(), time.Now())
				ctx = auth.SetConditions(ctx, s.signer(f))
				tx := &weavetest.Tx{Msg: s.msg(f, id)}

				cache := f.db.CacheWrap()
				_, checkErr := router.Check(ctx, cache, tx)
				cache.Discard()

				cache = f.db.CacheWrap()
				res, deliverErr := router.Deliver(ctx, cache, tx)
				if deliverErr == nil {
					assert.Nil(t, cache.Write())
				} else {
					cache.Discard()
				}

				if s.wantErr != nil {
					assert.IsErr(t, s.wantErr, deliverErr)
					// Randomness is only read on delivery.
					if !s.wantErr.Is(ErrRandomnessNotReady) {
						assert.IsErr(t, s.wantErr, checkErr)
					}
					continue
				}
				if checkErr != nil {
					t.Fatalf("step %d: check: %+v", i, checkErr)
				}
				if deliverErr != nil {
					t.Fatalf("step %d: deliver: %+v", i, deliverErr)
				}
				switch tx.Msg.(type) {
				case *NewChallengeMsg:
					assert.Equal(t, []byte(id), res.Data)
				case *RevealWinnerMsg:
					assert.Equal(t, 20, len(res.Data))
				}
			}

			assert.Equal(t, tc.wantInitiator[0], f.balance(t, f.initiator, f.m1))
			assert.Equal(t, tc.wantInitiator[1], f.balance(t, f.initiator, f.m2))
			assert.Equal(t, tc.wantAcceptor[0], f.balance(t, f.acceptor, f.m1))
			assert.Equal(t, tc.wantAcceptor[1], f.balance(t, f.acceptor, f.m2))

			_, err = f.control.Get(f.db, id)
			if tc.wantOpen {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, errors.ErrNotFound, err)
			}
		})
	}
}

func TestUpdateConfiguration(t *testing.T) {
	owner := weavetest.NewCondition()
	f := newFixture(t)

	genesis := fmt.Sprintf(`{"conf": {"challenge": {"owner": "%s", "initiator_only_decline": false}}}`, owner.Address())
	var opts crosspile.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))
	assert.Nil(t, Initializer{}.FromGenesis(opts, f.db))

	router := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(router, auth, f.control)

	update := &weavetest.Tx{Msg: &UpdateConfigurationMsg{
		Config: &Configuration{Owner: owner.Address(), InitiatorOnlyDecline: true},
	}}

	ctx := auth.SetConditions(context.Background(), f.initiator)
	_, err := router.Deliver(ctx, f.db, update)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	ctx = auth.SetConditions(context.Background(), owner)
	_, err = router.Deliver(ctx, f.db, update)
	assert.Nil(t, err)

	conf, err := loadConfiguration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, true, conf.InitiatorOnlyDecline)

	id := f.open(t, 10)
	f.match(t, id, 10)
	ctx = auth.SetConditions(context.Background(), f.acceptor)
	_, err = router.Deliver(ctx, f.db, &weavetest.Tx{Msg: &DeclineAcceptorWagerMsg{ChallengeID: id}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, Initializer{}.FromGenesis(crosspile.Options{}, f.db))

	conf, err := loadConfiguration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, false, conf.InitiatorOnlyDecline)
}

func TestQueryByAcceptor(t *testing.T) {
	f := newFixture(t)
	id := f.open(t, 10)
	f.match(t, id, 10)

	qr := crosspile.NewQueryRouter()
	RegisterQuery(qr)

	h := qr.Handler("/challenges/acceptor")
	if h == nil {
		t.Fatal("acceptor index query not registered")
	}
	models, err := h.Query(f.db, crosspile.KeyQueryMod, f.acceptor.Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte(id), models[0].Key[len(BucketName)+1:])
}
