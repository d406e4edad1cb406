package sigs

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/weavetest"
)

// signedTx wraps a mock message with signatures.
type signedTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sigs", Serialized: payload}},
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// signersHandler stores the conditions it was called with.
type signersHandler struct {
	Signers []crosspile.Condition
}

var _ crosspile.Handler = (*signersHandler)(nil)

func (s *signersHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &crosspile.CheckResult{}, nil
}

func (s *signersHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &crosspile.DeliverResult{}, nil
}
