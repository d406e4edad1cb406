/*
Package crypto holds the ed25519 keys used to sign transactions. The
public key of a signer determines the condition, and therefore the
address, under which it acts on chain.
*/
package crypto

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() crosspile.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is the serializable form of an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is the serializable form of an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is the serializable form of an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// GetEd25519 returns the raw private key bytes.
func (p *PrivateKey) GetEd25519() []byte {
	if p == nil {
		return nil
	}
	return p.Ed25519
}

// Address is the address of the condition the key signs for, or nil when
// the key is empty.
func (p *PublicKey) Address() crosspile.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	if err := crosspile.Codec.UnmarshalBinaryBare(raw, p); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (s *Signature) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	if err := crosspile.Codec.UnmarshalBinaryBare(raw, s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
