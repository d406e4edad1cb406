package app

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x/sigs"
)

// Tx is the transaction envelope of the chain: one message and the
// signatures authorizing it.
type Tx struct {
	Msg        crosspile.Msg        `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ crosspile.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (crosspile.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message carried.
func (tx *Tx) GetMsg() (crosspile.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without any
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := crosspile.Codec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
