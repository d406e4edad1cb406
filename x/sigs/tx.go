package sigs

import (
	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/errors"
)

// SignedTx is a transaction carrying signatures that can be verified by
// the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature is a single signature together with the public key and the
// sequence it was created for.
type StdSignature struct {
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
	Sequence  int64             `json:"sequence"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil || len(s.Pubkey.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil || len(s.Signature.Ed25519) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
