package cash

import (
	"regexp"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/derive"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

const (
	// MintBucketName is where the mints are stored.
	MintBucketName = "mint"
	// AccountBucketName is where the token accounts are stored.
	AccountBucketName = "tokacc"

	maxDecimals = 18
)

var isSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,15}$`).MatchString

// Mint declares a token. Only the authority can issue new tokens.
type Mint struct {
	Authority crosspile.Address `json:"authority"`
	Symbol    string            `json:"symbol"`
	Decimals  uint32            `json:"decimals"`
	Supply    uint64            `json:"supply"`
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *Mint) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

func (m *Mint) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if !isSymbol(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.Wrapf(errors.ErrInput, "invalid symbol %q", m.Symbol))
	}
	if m.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(errors.ErrInput, "max %d", maxDecimals))
	}
	return errs
}

func (m *Mint) Copy() orm.Model {
	cpy := *m
	cpy.Authority = m.Authority.Clone()
	return &cpy
}

// TokenAccount holds the balance of one owner for one mint.
type TokenAccount struct {
	Owner  crosspile.Address `json:"owner"`
	Mint   crosspile.Address `json:"mint"`
	Amount uint64            `json:"amount"`
}

var _ orm.Model = (*TokenAccount)(nil)

func (a *TokenAccount) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(a)
}

func (a *TokenAccount) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, a)
}

func (a *TokenAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
	return errs
}

func (a *TokenAccount) Copy() orm.Model {
	return &TokenAccount{
		Owner:  a.Owner.Clone(),
		Mint:   a.Mint.Clone(),
		Amount: a.Amount,
	}
}

// MintAddress returns the address of the mint declared by authority under
// the symbol.
func MintAddress(authority crosspile.Address, symbol string) (crosspile.Address, error) {
	addr, _, err := derive.FindAddress(derive.SeedMint, authority, []byte(symbol))
	return addr, err
}

// AccountAddress returns the address of the token account of owner for
// given mint. This is also the take-account receiving payouts.
func AccountAddress(owner, mint crosspile.Address) (crosspile.Address, error) {
	addr, _, err := derive.FindAddress(derive.SeedTokenAccount, owner, mint)
	return addr, err
}

// NewMintBucket returns the bucket storing mints by their address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket(MintBucketName, &Mint{})
}

// NewAccountBucket returns the bucket storing token accounts by their
// derived address, indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(AccountBucketName, &TokenAccount{},
		orm.WithIndex("owner", accountOwner, false))
}

func accountOwner(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	acc, ok := obj.Value().(*TokenAccount)
	if !ok {
		return nil, errors.Wrapf(errors.ErrState, "expected token account, got %T", obj.Value())
	}
	return acc.Owner, nil
}
