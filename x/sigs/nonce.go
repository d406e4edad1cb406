package sigs

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// NextNonce returns the sequence value that the next signature of given
// signer must use. Counting starts at zero.
func NextNonce(db crosspile.ReadOnlyKVStore, signer crosspile.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, signer, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
