package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x/oracle"
)

// RandomnessSource is the part of the oracle service a challenge depends
// on.
type RandomnessSource interface {
	Get(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (*oracle.Requester, error)
	RequestRandom(db crosspile.KVStore, requester, authority crosspile.Address) error
	TransferAuthority(db crosspile.KVStore, requester, authority, newAuthority crosspile.Address) error
	IsFulfilled(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (bool, error)
	ReadValue(db crosspile.ReadOnlyKVStore, requester crosspile.Address) ([]byte, error)
}

var _ RandomnessSource = oracle.Controller(nil)

// randomness binds oracle requesters to challenges. While a challenge is
// open it is the authority of its requester.
type randomness struct {
	src RandomnessSource
}

// checkBindable fails unless the initiator controls the requester.
func (r randomness) checkBindable(db crosspile.ReadOnlyKVStore, requester, initiator crosspile.Address) error {
	req, err := r.src.Get(db, requester)
	if err != nil {
		return err
	}
	if !req.Authority.Equals(initiator) {
		return errors.Wrap(errors.ErrUnauthorized, "initiator is not the requester authority")
	}
	return nil
}

// bind hands the requester authority over to the challenge.
func (r randomness) bind(db crosspile.KVStore, requester, initiator, challenge crosspile.Address) error {
	return r.src.TransferAuthority(db, requester, initiator, challenge)
}

// release gives the requester authority back to the initiator.
func (r randomness) release(db crosspile.KVStore, requester, challenge, initiator crosspile.Address) error {
	return r.src.TransferAuthority(db, requester, challenge, initiator)
}

// requestRandomness issues a request on behalf of the challenge. A pending
// request results in oracle.ErrRequestInFlight.
func (r randomness) requestRandomness(db crosspile.KVStore, requester, challenge crosspile.Address) error {
	return r.src.RequestRandom(db, requester, challenge)
}

func (r randomness) isFulfilled(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (bool, error) {
	return r.src.IsFulfilled(db, requester)
}

// readValue fails with oracle.ErrNotFulfilled before the oracle published.
func (r randomness) readValue(db crosspile.ReadOnlyKVStore, requester crosspile.Address) ([]byte, error) {
	return r.src.ReadValue(db, requester)
}
