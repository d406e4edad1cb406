package cash

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

func init() {
	crosspile.RegisterMsg(&CreateMintMsg{}, "crosspile/cash/CreateMintMsg")
	crosspile.RegisterMsg(&MintToMsg{}, "crosspile/cash/MintToMsg")
	crosspile.RegisterMsg(&TransferMsg{}, "crosspile/cash/TransferMsg")
}

const (
	pathCreateMint = "cash/create_mint"
	pathMintTo     = "cash/mint_to"
	pathTransfer   = "cash/transfer"
)

// CreateMintMsg declares a new token. It must be signed by the authority.
type CreateMintMsg struct {
	Authority crosspile.Address `json:"authority"`
	Symbol    string            `json:"symbol"`
	Decimals  uint32            `json:"decimals"`
}

var _ crosspile.Msg = (*CreateMintMsg)(nil)

func (CreateMintMsg) Path() string {
	return pathCreateMint
}

func (m *CreateMintMsg) Validate() error {
	mint := Mint{Authority: m.Authority, Symbol: m.Symbol, Decimals: m.Decimals}
	return mint.Validate()
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *CreateMintMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// MintToMsg issues tokens to an owner. It must be signed by the mint
// authority.
type MintToMsg struct {
	Mint        crosspile.Address `json:"mint"`
	Destination crosspile.Address `json:"destination"`
	Amount      uint64            `json:"amount"`
}

var _ crosspile.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string {
	return pathMintTo
}

func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *MintToMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// TransferMsg moves tokens between two owners. It must be signed by the
// source.
type TransferMsg struct {
	Source      crosspile.Address `json:"source"`
	Destination crosspile.Address `json:"destination"`
	Mint        crosspile.Address `json:"mint"`
	Amount      uint64            `json:"amount"`
}

var _ crosspile.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}
