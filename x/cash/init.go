package cash

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

const optKey = "cash"

// GenesisMint declares a mint in the genesis file.
type GenesisMint struct {
	Authority crosspile.Address `json:"authority"`
	Symbol    string            `json:"symbol"`
	Decimals  uint32            `json:"decimals"`
}

// GenesisAccount is an initial balance. The mint is referenced by its
// address.
type GenesisAccount struct {
	Owner  crosspile.Address `json:"owner"`
	Mint   crosspile.Address `json:"mint"`
	Amount uint64            `json:"amount"`
}

// Genesis is the "cash" section of the genesis app state.
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ crosspile.Initializer = Initializer{}

// FromGenesis creates all declared mints and issues the initial balances.
func (Initializer) FromGenesis(opts crosspile.Options, db crosspile.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	control := NewController()
	for i, m := range gen.Mints {
		if _, err := control.CreateMint(db, m.Authority, m.Symbol, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range gen.Accounts {
		if err := control.MintTo(db, a.Mint, a.Owner, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
