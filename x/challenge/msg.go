package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

func init() {
	crosspile.RegisterMsg(&NewChallengeMsg{}, "crosspile/challenge/NewChallengeMsg")
	crosspile.RegisterMsg(&AcceptChallengeMsg{}, "crosspile/challenge/AcceptChallengeMsg")
	crosspile.RegisterMsg(&ApproveAcceptorWagerMsg{}, "crosspile/challenge/ApproveAcceptorWagerMsg")
	crosspile.RegisterMsg(&DeclineAcceptorWagerMsg{}, "crosspile/challenge/DeclineAcceptorWagerMsg")
	crosspile.RegisterMsg(&RevealWinnerMsg{}, "crosspile/challenge/RevealWinnerMsg")
	crosspile.RegisterMsg(&CancelBeforeAcceptorMsg{}, "crosspile/challenge/CancelBeforeAcceptorMsg")
	crosspile.RegisterMsg(&CancelAfterAcceptorMsg{}, "crosspile/challenge/CancelAfterAcceptorMsg")
	crosspile.RegisterMsg(&UpdateConfigurationMsg{}, "crosspile/challenge/UpdateConfigurationMsg")
}

// NewChallengeMsg opens a challenge. It must be signed by the initiator,
// who must also be the authority of the requester.
type NewChallengeMsg struct {
	Initiator crosspile.Address `json:"initiator"`
	Mint      crosspile.Address `json:"mint"`
	Amount    uint64            `json:"amount"`
	Requester crosspile.Address `json:"requester"`
}

var _ crosspile.Msg = (*NewChallengeMsg)(nil)

func (NewChallengeMsg) Path() string {
	return "challenge/new"
}

func (m *NewChallengeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Initiator", m.Initiator.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Requester", m.Requester.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *NewChallengeMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *NewChallengeMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// AcceptChallengeMsg matches an open challenge. It must be signed by the
// acceptor.
type AcceptChallengeMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
	Acceptor    crosspile.Address `json:"acceptor"`
	Mint        crosspile.Address `json:"mint"`
	Amount      uint64            `json:"amount"`
}

var _ crosspile.Msg = (*AcceptChallengeMsg)(nil)

func (AcceptChallengeMsg) Path() string {
	return "challenge/accept"
}

func (m *AcceptChallengeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ChallengeID", m.ChallengeID.Validate())
	errs = errors.AppendField(errs, "Acceptor", m.Acceptor.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *AcceptChallengeMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *AcceptChallengeMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// ApproveAcceptorWagerMsg is signed by the initiator to commit both stakes.
type ApproveAcceptorWagerMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
}

var _ crosspile.Msg = (*ApproveAcceptorWagerMsg)(nil)

func (ApproveAcceptorWagerMsg) Path() string {
	return "challenge/approve"
}

func (m *ApproveAcceptorWagerMsg) Validate() error {
	return errors.AppendField(nil, "ChallengeID", m.ChallengeID.Validate())
}

func (m *ApproveAcceptorWagerMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *ApproveAcceptorWagerMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// DeclineAcceptorWagerMsg refunds the acceptor and reopens the challenge.
type DeclineAcceptorWagerMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
}

var _ crosspile.Msg = (*DeclineAcceptorWagerMsg)(nil)

func (DeclineAcceptorWagerMsg) Path() string {
	return "challenge/decline"
}

func (m *DeclineAcceptorWagerMsg) Validate() error {
	return errors.AppendField(nil, "ChallengeID", m.ChallengeID.Validate())
}

func (m *DeclineAcceptorWagerMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *DeclineAcceptorWagerMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// RevealWinnerMsg settles an approved challenge. Either party can send it.
type RevealWinnerMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
}

var _ crosspile.Msg = (*RevealWinnerMsg)(nil)

func (RevealWinnerMsg) Path() string {
	return "challenge/reveal"
}

func (m *RevealWinnerMsg) Validate() error {
	return errors.AppendField(nil, "ChallengeID", m.ChallengeID.Validate())
}

func (m *RevealWinnerMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *RevealWinnerMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// CancelBeforeAcceptorMsg closes an unmatched challenge.
type CancelBeforeAcceptorMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
}

var _ crosspile.Msg = (*CancelBeforeAcceptorMsg)(nil)

func (CancelBeforeAcceptorMsg) Path() string {
	return "challenge/cancel_before_acceptor"
}

func (m *CancelBeforeAcceptorMsg) Validate() error {
	return errors.AppendField(nil, "ChallengeID", m.ChallengeID.Validate())
}

func (m *CancelBeforeAcceptorMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *CancelBeforeAcceptorMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// CancelAfterAcceptorMsg closes a matched challenge that was not approved.
type CancelAfterAcceptorMsg struct {
	ChallengeID crosspile.Address `json:"challenge_id"`
}

var _ crosspile.Msg = (*CancelAfterAcceptorMsg)(nil)

func (CancelAfterAcceptorMsg) Path() string {
	return "challenge/cancel_after_acceptor"
}

func (m *CancelAfterAcceptorMsg) Validate() error {
	return errors.AppendField(nil, "ChallengeID", m.ChallengeID.Validate())
}

func (m *CancelAfterAcceptorMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *CancelAfterAcceptorMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// UpdateConfigurationMsg replaces the challenge configuration. It must be
// signed by the current configuration owner.
type UpdateConfigurationMsg struct {
	Config *Configuration `json:"config"`
}

var _ crosspile.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "challenge/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Config == nil {
		return errors.Field("Config", errors.ErrEmpty, "configuration required")
	}
	return m.Config.Validate()
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}
