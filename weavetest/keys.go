package weavetest

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/crypto"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a freshly generated key.
func NewCondition() crosspile.Condition {
	return NewKey().PublicKey().Condition()
}
