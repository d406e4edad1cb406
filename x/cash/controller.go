package cash

import (
	"math"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

// Controller is the token custody API other extensions use. No method
// authorizes the caller.
type Controller interface {
	CreateMint(db crosspile.KVStore, authority crosspile.Address, symbol string, decimals uint32) (crosspile.Address, error)
	GetMint(db crosspile.ReadOnlyKVStore, mint crosspile.Address) (*Mint, error)
	CreateAccount(db crosspile.KVStore, owner, mint crosspile.Address) (crosspile.Address, error)
	MintTo(db crosspile.KVStore, mint, owner crosspile.Address, amount uint64) error
	Transfer(db crosspile.KVStore, src, dst, mint crosspile.Address, amount uint64) error
	Balance(db crosspile.ReadOnlyKVStore, owner, mint crosspile.Address) (uint64, error)
	CloseAccount(db crosspile.KVStore, owner, mint crosspile.Address) error
}

// TokenController is the Controller implementation backed by the mint and
// token account buckets.
type TokenController struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

var _ Controller = TokenController{}

// NewController returns a token controller
func NewController() TokenController {
	return TokenController{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

// CreateMint declares a new token with zero supply.
func (c TokenController) CreateMint(db crosspile.KVStore, authority crosspile.Address, symbol string, decimals uint32) (crosspile.Address, error) {
	mint := Mint{Authority: authority, Symbol: symbol, Decimals: decimals}
	if err := mint.Validate(); err != nil {
		return nil, err
	}
	addr, err := MintAddress(authority, symbol)
	if err != nil {
		return nil, err
	}
	switch err := c.mints.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "mint %s", symbol)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	if err := c.mints.Put(db, addr, &mint); err != nil {
		return nil, err
	}
	return addr, nil
}

// GetMint returns the mint stored at given address.
func (c TokenController) GetMint(db crosspile.ReadOnlyKVStore, addr crosspile.Address) (*Mint, error) {
	var mint Mint
	if err := c.mints.One(db, addr, &mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &mint, nil
}

// CreateAccount returns the address of the owner's account for the mint,
// creating an empty one if it does not exist.
func (c TokenController) CreateAccount(db crosspile.KVStore, owner, mint crosspile.Address) (crosspile.Address, error) {
	if _, err := c.GetMint(db, mint); err != nil {
		return nil, err
	}
	_, addr, err := c.loadAccount(db, owner, mint)
	if err != nil {
		return nil, err
	}
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := TokenAccount{Owner: owner, Mint: mint}
	if err := c.accounts.Put(db, addr, &acc); err != nil {
		return nil, err
	}
	return addr, nil
}

// MintTo issues new tokens into the owner's account.
func (c TokenController) MintTo(db crosspile.KVStore, mintAddr, owner crosspile.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	mint, err := c.GetMint(db, mintAddr)
	if err != nil {
		return err
	}
	if mint.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	acc, addr, err := c.loadAccount(db, owner, mintAddr)
	if err != nil {
		return err
	}
	mint.Supply += amount
	acc.Amount += amount
	if err := c.mints.Put(db, mintAddr, mint); err != nil {
		return err
	}
	return c.accounts.Put(db, addr, acc)
}

// Transfer moves amount of tokens between the accounts of two owners. The
// destination account is created on demand.
func (c TokenController) Transfer(db crosspile.KVStore, src, dst, mint crosspile.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	from, fromAddr, err := c.loadAccount(db, src, mint)
	if err != nil {
		return err
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", from.Amount, amount)
	}
	if src.Equals(dst) {
		return nil
	}
	if _, err := c.GetMint(db, mint); err != nil {
		return err
	}
	to, toAddr, err := c.loadAccount(db, dst, mint)
	if err != nil {
		return err
	}
	// Supply bounds every balance, so the sum cannot overflow.
	from.Amount -= amount
	to.Amount += amount
	if err := c.accounts.Put(db, fromAddr, from); err != nil {
		return err
	}
	return c.accounts.Put(db, toAddr, to)
}

// Balance returns the token amount of the owner. A missing account holds
// nothing.
func (c TokenController) Balance(db crosspile.ReadOnlyKVStore, owner, mint crosspile.Address) (uint64, error) {
	acc, _, err := c.loadAccount(db, owner, mint)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// CloseAccount removes an empty account.
func (c TokenController) CloseAccount(db crosspile.KVStore, owner, mint crosspile.Address) error {
	acc, addr, err := c.loadAccount(db, owner, mint)
	if err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d tokens", acc.Amount)
	}
	return c.accounts.Delete(db, addr)
}

// loadAccount returns the account of owner for mint together with its
// address. A missing account is returned empty.
func (c TokenController) loadAccount(db crosspile.ReadOnlyKVStore, owner, mint crosspile.Address) (*TokenAccount, crosspile.Address, error) {
	if err := owner.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "owner")
	}
	if err := mint.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "mint")
	}
	addr, err := AccountAddress(owner, mint)
	if err != nil {
		return nil, nil, err
	}
	var acc TokenAccount
	switch err := c.accounts.One(db, addr, &acc); {
	case err == nil:
		return &acc, addr, nil
	case errors.ErrNotFound.Is(err):
		return &TokenAccount{Owner: owner, Mint: mint}, addr, nil
	default:
		return nil, nil, err
	}
}
