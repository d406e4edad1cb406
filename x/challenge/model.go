package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/derive"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

// BucketName is where the open challenges are stored.
const BucketName = "chal"

// State of an open challenge. Closed challenges are removed from the
// store, the terminal states are only reported.
type State uint8

const (
	Created State = iota
	Matched
	Approved
	Resolved
	CancelledUnmatched
	CancelledMatched
)

var stateNames = map[State]string{
	Created:            "created",
	Matched:            "matched",
	Approved:           "approved",
	Resolved:           "resolved",
	CancelledUnmatched: "cancelled_unmatched",
	CancelledMatched:   "cancelled_matched",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Challenge is the wager between an initiator and an acceptor. All acceptor
// fields are unset until the challenge is matched.
type Challenge struct {
	Initiator            crosspile.Address `json:"initiator"`
	InitiatorTokensMint  crosspile.Address `json:"initiator_tokens_mint"`
	InitiatorTokensVault crosspile.Address `json:"initiator_tokens_vault"`
	InitiatorWagerAmount uint64            `json:"initiator_wager_amount"`
	InitiatorVaultNonce  uint32            `json:"initiator_vault_nonce"`

	Acceptor              crosspile.Address `json:"acceptor,omitempty"`
	AcceptorTokensMint    crosspile.Address `json:"acceptor_tokens_mint,omitempty"`
	AcceptorTokensVault   crosspile.Address `json:"acceptor_tokens_vault,omitempty"`
	AcceptorWagerAmount   uint64            `json:"acceptor_wager_amount,omitempty"`
	AcceptorVaultNonce    uint32            `json:"acceptor_vault_nonce,omitempty"`
	AcceptorWagerApproved bool              `json:"acceptor_wager_approved"`

	Requester crosspile.Address  `json:"requester"`
	Nonce     uint32             `json:"nonce"`
	CreatedAt crosspile.UnixTime `json:"created_at"`
}

var _ orm.Model = (*Challenge)(nil)

func (c *Challenge) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(c)
}

func (c *Challenge) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, c)
}

func (c *Challenge) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Initiator", c.Initiator.Validate())
	errs = errors.AppendField(errs, "InitiatorTokensMint", c.InitiatorTokensMint.Validate())
	errs = errors.AppendField(errs, "InitiatorTokensVault", c.InitiatorTokensVault.Validate())
	if c.InitiatorWagerAmount == 0 {
		errs = errors.AppendField(errs, "InitiatorWagerAmount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Requester", c.Requester.Validate())
	errs = errors.AppendField(errs, "CreatedAt", c.CreatedAt.Validate())
	if c.Nonce > 255 || c.InitiatorVaultNonce > 255 || c.AcceptorVaultNonce > 255 {
		errs = errors.AppendField(errs, "Nonce", errors.Wrap(errors.ErrInput, "derivation nonce is a byte"))
	}

	if c.Matched() {
		errs = errors.AppendField(errs, "Acceptor", c.Acceptor.Validate())
		errs = errors.AppendField(errs, "AcceptorTokensMint", c.AcceptorTokensMint.Validate())
		errs = errors.AppendField(errs, "AcceptorTokensVault", c.AcceptorTokensVault.Validate())
		if c.AcceptorWagerAmount == 0 {
			errs = errors.AppendField(errs, "AcceptorWagerAmount", errors.ErrAmount)
		}
	} else {
		if len(c.AcceptorTokensMint) != 0 || len(c.AcceptorTokensVault) != 0 || c.AcceptorWagerAmount != 0 || c.AcceptorVaultNonce != 0 {
			errs = errors.AppendField(errs, "Acceptor", errors.Wrap(errors.ErrState, "acceptor fields set without an acceptor"))
		}
		if c.AcceptorWagerApproved {
			errs = errors.AppendField(errs, "AcceptorWagerApproved", errors.Wrap(errors.ErrState, "approved without an acceptor"))
		}
	}
	return errs
}

func (c *Challenge) Copy() orm.Model {
	cpy := *c
	cpy.Initiator = c.Initiator.Clone()
	cpy.InitiatorTokensMint = c.InitiatorTokensMint.Clone()
	cpy.InitiatorTokensVault = c.InitiatorTokensVault.Clone()
	cpy.Acceptor = c.Acceptor.Clone()
	cpy.AcceptorTokensMint = c.AcceptorTokensMint.Clone()
	cpy.AcceptorTokensVault = c.AcceptorTokensVault.Clone()
	cpy.Requester = c.Requester.Clone()
	return &cpy
}

// Matched returns true once an acceptor joined.
func (c *Challenge) Matched() bool {
	return len(c.Acceptor) != 0
}

// State returns the current state of an open challenge.
func (c *Challenge) State() State {
	switch {
	case !c.Matched():
		return Created
	case !c.AcceptorWagerApproved:
		return Matched
	default:
		return Approved
	}
}

// IsParty returns true if addr is the initiator or the current acceptor.
func (c *Challenge) IsParty(addr crosspile.Address) bool {
	if len(addr) == 0 {
		return false
	}
	return c.Initiator.Equals(addr) || (c.Matched() && c.Acceptor.Equals(addr))
}

// clearAcceptor brings a matched challenge back to the created state.
func (c *Challenge) clearAcceptor() {
	c.Acceptor = nil
	c.AcceptorTokensMint = nil
	c.AcceptorTokensVault = nil
	c.AcceptorWagerAmount = 0
	c.AcceptorVaultNonce = 0
	c.AcceptorWagerApproved = false
}

// ChallengeAddress returns the address of the challenge opened by the
// initiator together with its derivation nonce.
func ChallengeAddress(initiator crosspile.Address) (crosspile.Address, uint8, error) {
	return derive.FindAddress(derive.SeedChallenge, initiator)
}

// NewBucket returns the bucket storing challenges by their derived address,
// indexed by acceptor.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Challenge{},
		orm.WithIndex("acceptor", acceptorIndex, false))
}

func acceptorIndex(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	c, ok := obj.Value().(*Challenge)
	if !ok {
		return nil, errors.Wrapf(errors.ErrState, "expected challenge, got %T", obj.Value())
	}
	if !c.Matched() {
		return nil, nil
	}
	return c.Acceptor, nil
}
