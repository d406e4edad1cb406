package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/derive"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x/cash"
)

// Role of a vault owner in a challenge.
type Role uint8

const (
	InitiatorRole Role = iota
	AcceptorRole
)

func (r Role) seed() []byte {
	if r == AcceptorRole {
		return derive.SeedAcceptorVault
	}
	return derive.SeedInitiatorVault
}

func (r Role) String() string {
	if r == AcceptorRole {
		return "acceptor"
	}
	return "initiator"
}

// VaultRef locates the vault of one party of a challenge.
type VaultRef struct {
	Role      Role
	Owner     crosspile.Address
	Challenge crosspile.Address
	Mint      crosspile.Address
	Address   crosspile.Address
	Nonce     uint8
}

// VaultAddress returns the address owning the escrowed tokens of owner in
// given challenge.
func VaultAddress(role Role, owner, challenge crosspile.Address) (crosspile.Address, uint8, error) {
	return derive.FindAddress(role.seed(), owner, challenge)
}

// VaultController moves tokens in and out of vaults. Vaults are token
// accounts owned by a derived address nobody can sign for.
type VaultController struct {
	tokens cash.Controller
}

// NewVaultController returns a vault controller on top of the token
// custody.
func NewVaultController(tokens cash.Controller) VaultController {
	return VaultController{tokens: tokens}
}

// Deposit moves amount of mint tokens from the owner into its vault for
// the challenge. The vault must be empty.
func (v VaultController) Deposit(db crosspile.KVStore, role Role, owner, challenge, mint crosspile.Address, amount uint64) (VaultRef, error) {
	addr, nonce, err := VaultAddress(role, owner, challenge)
	if err != nil {
		return VaultRef{}, err
	}
	ref := VaultRef{
		Role:      role,
		Owner:     owner,
		Challenge: challenge,
		Mint:      mint,
		Address:   addr,
		Nonce:     nonce,
	}
	switch held, err := v.Balance(db, ref); {
	case err != nil:
		return VaultRef{}, err
	case held != 0:
		return VaultRef{}, errors.Wrapf(errors.ErrState, "%s vault holds %d tokens", role, held)
	}
	if err := v.tokens.Transfer(db, owner, addr, mint, amount); err != nil {
		return VaultRef{}, errors.Wrapf(err, "%s deposit", role)
	}
	return ref, nil
}

// CanDeposit fails with ErrInsufficientAmount when owner holds less than
// amount of mint tokens.
func (v VaultController) CanDeposit(db crosspile.ReadOnlyKVStore, owner, mint crosspile.Address, amount uint64) error {
	held, err := v.tokens.Balance(db, owner, mint)
	if err != nil {
		return err
	}
	if held < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", held, amount)
	}
	return nil
}

// Refund moves the whole vault balance to destination and closes the
// vault account.
func (v VaultController) Refund(db crosspile.KVStore, ref VaultRef, destination crosspile.Address) (uint64, error) {
	return v.empty(db, ref, destination)
}

// Payout moves the whole vault balance to the destination take-account,
// which is the account of destination for the vault mint.
func (v VaultController) Payout(db crosspile.KVStore, ref VaultRef, destination crosspile.Address) (uint64, error) {
	return v.empty(db, ref, destination)
}

// Balance returns the amount of tokens held by the vault.
func (v VaultController) Balance(db crosspile.ReadOnlyKVStore, ref VaultRef) (uint64, error) {
	return v.tokens.Balance(db, ref.Address, ref.Mint)
}

func (v VaultController) empty(db crosspile.KVStore, ref VaultRef, destination crosspile.Address) (uint64, error) {
	held, err := v.Balance(db, ref)
	if err != nil {
		return 0, err
	}
	if held == 0 {
		return 0, nil
	}
	if err := v.tokens.Transfer(db, ref.Address, destination, ref.Mint, held); err != nil {
		return 0, errors.Wrapf(err, "empty %s vault", ref.Role)
	}
	if err := v.tokens.CloseAccount(db, ref.Address, ref.Mint); err != nil {
		return 0, errors.Wrapf(err, "close %s vault", ref.Role)
	}
	return held, nil
}

// vaultOf returns the reference of a vault recorded in the challenge.
func vaultOf(c *Challenge, id crosspile.Address, role Role) VaultRef {
	if role == AcceptorRole {
		return VaultRef{
			Role:      AcceptorRole,
			Owner:     c.Acceptor,
			Challenge: id,
			Mint:      c.AcceptorTokensMint,
			Address:   c.AcceptorTokensVault,
			Nonce:     uint8(c.AcceptorVaultNonce),
		}
	}
	return VaultRef{
		Role:      InitiatorRole,
		Owner:     c.Initiator,
		Challenge: id,
		Mint:      c.InitiatorTokensMint,
		Address:   c.InitiatorTokensVault,
		Nonce:     uint8(c.InitiatorVaultNonce),
	}
}
