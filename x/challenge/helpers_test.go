package challenge

import (
	"bytes"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest"
	"github.com/iov-one/crosspile/x/cash"
	"github.com/iov-one/crosspile/x/oracle"
	"github.com/stretchr/testify/require"
)

const fund = 2000

// fixture is a store with two funded parties, two mints and a requester
// controlled by the initiator.
type fixture struct {
	db      crosspile.CacheableKVStore
	tokens  cash.TokenController
	oracles oracle.RequesterController
	control ChallengeController

	initiator crosspile.Condition
	acceptor  crosspile.Condition
	oracle    crosspile.Condition

	m1, m2    crosspile.Address
	requester crosspile.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		db:        store.MemStore(),
		tokens:    cash.NewController(),
		oracles:   oracle.NewController(),
		initiator: weavetest.NewCondition(),
		acceptor:  weavetest.NewCondition(),
		oracle:    weavetest.NewCondition(),
	}
	f.control = NewController(f.tokens, f.oracles)

	authority := weavetest.NewCondition().Address()
	var err error
	f.m1, err = f.tokens.CreateMint(f.db, authority, "MONE", 0)
	require.NoError(t, err)
	f.m2, err = f.tokens.CreateMint(f.db, authority, "MTWO", 0)
	require.NoError(t, err)
	require.NoError(t, f.tokens.MintTo(f.db, f.m1, f.initiator.Address(), fund))
	require.NoError(t, f.tokens.MintTo(f.db, f.m2, f.acceptor.Address(), fund))

	f.requester, err = f.oracles.Initialize(f.db, f.initiator.Address(), f.oracle.Address(), 1)
	require.NoError(t, err)
	return f
}

func (f *fixture) balance(t testing.TB, owner crosspile.Condition, mint crosspile.Address) uint64 {
	t.Helper()
	n, err := f.tokens.Balance(f.db, owner.Address(), mint)
	require.NoError(t, err)
	return n
}

func (f *fixture) vaultBalance(t testing.TB, addr, mint crosspile.Address) uint64 {
	t.Helper()
	n, err := f.tokens.Balance(f.db, addr, mint)
	require.NoError(t, err)
	return n
}

// publish makes the oracle fulfill the pending request with a value whose
// first byte is first.
func (f *fixture) publish(t testing.TB, first byte) {
	t.Helper()
	value := bytes.Repeat([]byte{0xAA}, oracle.RandomLength)
	value[0] = first
	require.NoError(t, f.oracles.PublishRandom(f.db, f.requester, f.oracle.Address(), value))
}

// open creates a challenge of the initiator staking amount of m1.
func (f *fixture) open(t testing.TB, amount uint64) crosspile.Address {
	t.Helper()
	id, err := f.control.NewChallenge(f.db, 1000, f.initiator.Address(), f.m1, amount, f.requester)
	require.NoError(t, err)
	return id
}

// match makes the acceptor stake amount of m2.
func (f *fixture) match(t testing.TB, id crosspile.Address, amount uint64) {
	t.Helper()
	require.NoError(t, f.control.AcceptChallenge(f.db, id, f.acceptor.Address(), f.m2, amount))
}
