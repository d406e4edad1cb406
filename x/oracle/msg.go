package oracle

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

func init() {
	crosspile.RegisterMsg(&InitializeMsg{}, "crosspile/oracle/InitializeMsg")
	crosspile.RegisterMsg(&RequestRandomMsg{}, "crosspile/oracle/RequestRandomMsg")
	crosspile.RegisterMsg(&PublishRandomMsg{}, "crosspile/oracle/PublishRandomMsg")
	crosspile.RegisterMsg(&TransferAuthorityMsg{}, "crosspile/oracle/TransferAuthorityMsg")
}

// InitializeMsg creates a requester. It must be signed by the authority.
type InitializeMsg struct {
	Authority crosspile.Address `json:"authority"`
	Oracle    crosspile.Address `json:"oracle"`
	Seed      uint64            `json:"seed"`
}

var _ crosspile.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return "oracle/initialize"
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	errs = errors.AppendField(errs, "Oracle", m.Oracle.Validate())
	return errs
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// RequestRandomMsg starts a request. It must be signed by the requester
// authority.
type RequestRandomMsg struct {
	Requester crosspile.Address `json:"requester"`
}

var _ crosspile.Msg = (*RequestRandomMsg)(nil)

func (RequestRandomMsg) Path() string {
	return "oracle/request_random"
}

func (m *RequestRandomMsg) Validate() error {
	return errors.AppendField(nil, "Requester", m.Requester.Validate())
}

func (m *RequestRandomMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *RequestRandomMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// PublishRandomMsg fulfills a pending request. It must be signed by the
// oracle.
type PublishRandomMsg struct {
	Requester crosspile.Address `json:"requester"`
	Random    []byte            `json:"random"`
}

var _ crosspile.Msg = (*PublishRandomMsg)(nil)

func (PublishRandomMsg) Path() string {
	return "oracle/publish_random"
}

func (m *PublishRandomMsg) Validate() error {
	errs := errors.AppendField(nil, "Requester", m.Requester.Validate())
	if len(m.Random) != RandomLength {
		errs = errors.AppendField(errs, "Random", errors.Wrapf(errors.ErrInput, "want %d bytes", RandomLength))
	}
	return errs
}

func (m *PublishRandomMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *PublishRandomMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}

// TransferAuthorityMsg changes the requester authority. It must be signed
// by the current authority.
type TransferAuthorityMsg struct {
	Requester    crosspile.Address `json:"requester"`
	NewAuthority crosspile.Address `json:"new_authority"`
}

var _ crosspile.Msg = (*TransferAuthorityMsg)(nil)

func (TransferAuthorityMsg) Path() string {
	return "oracle/transfer_authority"
}

func (m *TransferAuthorityMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Requester", m.Requester.Validate())
	errs = errors.AppendField(errs, "NewAuthority", m.NewAuthority.Validate())
	return errs
}

func (m *TransferAuthorityMsg) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(m)
}

func (m *TransferAuthorityMsg) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, m)
}
