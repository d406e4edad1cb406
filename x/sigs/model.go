package sigs

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequence is the greatest value a javascript client can represent
// exactly (Number.MAX_SAFE_INTEGER).
const maxSequence = (1 << 53) - 1

// UserData holds the public key and the next expected sequence of a
// signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, u)
}

func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

func (u *UserData) Copy() orm.Model {
	return &UserData{Pubkey: u.Pubkey, Sequence: u.Sequence}
}

// CheckAndIncrementSequence increments the sequence if it equals the
// expected value.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns the bucket holding UserData keyed by the signer
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the stored user or a fresh one for an unknown key.
func loadUser(db crosspile.ReadOnlyKVStore, bucket orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := bucket.One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}
