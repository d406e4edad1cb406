package cash

import (
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenController(t *testing.T) {
	Convey("Given a mint with two owners", t, func() {
		db := store.MemStore()
		control := NewController()

		authority := weavetest.NewCondition().Address()
		alice := weavetest.NewCondition().Address()
		bob := weavetest.NewCondition().Address()

		mint, err := control.CreateMint(db, authority, "IOV", 6)
		So(err, ShouldBeNil)
		So(control.MintTo(db, mint, alice, 1000), ShouldBeNil)

		Convey("Balances are kept per owner", func() {
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 1000)
			So(mustBalance(t, control, db, bob, mint), ShouldEqual, 0)

			m, err := control.GetMint(db, mint)
			So(err, ShouldBeNil)
			So(m.Supply, ShouldEqual, 1000)
		})

		Convey("Transfer moves tokens and creates the destination", func() {
			So(control.Transfer(db, alice, bob, mint, 300), ShouldBeNil)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 700)
			So(mustBalance(t, control, db, bob, mint), ShouldEqual, 300)
		})

		Convey("Transfer of everything leaves an empty account", func() {
			So(control.Transfer(db, alice, bob, mint, 1000), ShouldBeNil)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 0)
			So(control.CloseAccount(db, alice, mint), ShouldBeNil)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 0)
		})

		Convey("Short balance fails without changes", func() {
			err := control.Transfer(db, alice, bob, mint, 1001)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 1000)
			So(mustBalance(t, control, db, bob, mint), ShouldEqual, 0)
		})

		Convey("Zero amount is rejected", func() {
			So(errors.ErrAmount.Is(control.Transfer(db, alice, bob, mint, 0)), ShouldBeTrue)
			So(errors.ErrAmount.Is(control.MintTo(db, mint, bob, 0)), ShouldBeTrue)
		})

		Convey("Transfer to self is a no-op", func() {
			So(control.Transfer(db, alice, alice, mint, 10), ShouldBeNil)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 1000)
		})

		Convey("Account holding tokens cannot be closed", func() {
			So(errors.ErrState.Is(control.CloseAccount(db, alice, mint)), ShouldBeTrue)
		})

		Convey("Missing account cannot be closed", func() {
			So(errors.ErrNotFound.Is(control.CloseAccount(db, bob, mint)), ShouldBeTrue)
		})

		Convey("Creating an account is idempotent", func() {
			a1, err := control.CreateAccount(db, alice, mint)
			So(err, ShouldBeNil)
			a2, err := control.CreateAccount(db, alice, mint)
			So(err, ShouldBeNil)
			So(a1, ShouldResemble, a2)
			So(mustBalance(t, control, db, alice, mint), ShouldEqual, 1000)

			want, err := AccountAddress(alice, mint)
			So(err, ShouldBeNil)
			So(a1, ShouldResemble, want)
		})

		Convey("Mint must exist", func() {
			unknown := weavetest.NewCondition().Address()
			_, err := control.CreateAccount(db, alice, unknown)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			So(errors.ErrNotFound.Is(control.MintTo(db, unknown, alice, 1)), ShouldBeTrue)
		})

		Convey("Mint symbol is unique per authority", func() {
			_, err := control.CreateMint(db, authority, "IOV", 2)
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)

			other, err := control.CreateMint(db, alice, "IOV", 2)
			So(err, ShouldBeNil)
			So(other, ShouldNotResemble, mint)
		})
	})
}

func TestMintSupplyOverflow(t *testing.T) {
	db := store.MemStore()
	control := NewController()
	authority := weavetest.NewCondition().Address()
	mint, err := control.CreateMint(db, authority, "BIG", 0)
	require.NoError(t, err)

	require.NoError(t, control.MintTo(db, mint, authority, ^uint64(0)))
	err = control.MintTo(db, mint, authority, 1)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestMintValidation(t *testing.T) {
	authority := weavetest.NewCondition().Address()
	cases := map[string]struct {
		mint    Mint
		wantErr bool
	}{
		"valid":           {mint: Mint{Authority: authority, Symbol: "ETH2", Decimals: 18}},
		"lowercase":       {mint: Mint{Authority: authority, Symbol: "eth"}, wantErr: true},
		"too short":       {mint: Mint{Authority: authority, Symbol: "E"}, wantErr: true},
		"no authority":    {mint: Mint{Symbol: "ETH"}, wantErr: true},
		"too many digits": {mint: Mint{Authority: authority, Symbol: "ETH", Decimals: 19}, wantErr: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.mint.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func mustBalance(t testing.TB, c Controller, db crosspile.ReadOnlyKVStore, owner, mint crosspile.Address) uint64 {
	t.Helper()
	n, err := c.Balance(db, owner, mint)
	if err != nil {
		t.Fatalf("cannot read balance: %s", err)
	}
	return n
}
