package oracle

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

// Controller is the randomness service API. Every mutating method
// authorizes the acting identity against the stored requester, reads do
// not.
type Controller interface {
	Initialize(db crosspile.KVStore, authority, oracle crosspile.Address, seed uint64) (crosspile.Address, error)
	Get(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (*Requester, error)
	RequestRandom(db crosspile.KVStore, requester, authority crosspile.Address) error
	PublishRandom(db crosspile.KVStore, requester, oracle crosspile.Address, random []byte) error
	TransferAuthority(db crosspile.KVStore, requester, authority, newAuthority crosspile.Address) error
	IsFulfilled(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (bool, error)
	ReadValue(db crosspile.ReadOnlyKVStore, requester crosspile.Address) ([]byte, error)
}

// RequesterController is the bucket backed Controller.
type RequesterController struct {
	bucket orm.ModelBucket
}

var _ Controller = RequesterController{}

// NewController returns a requester controller
func NewController() RequesterController {
	return RequesterController{bucket: NewBucket()}
}

// Initialize creates a requester owned by authority and answered by
// oracle.
func (c RequesterController) Initialize(db crosspile.KVStore, authority, oracle crosspile.Address, seed uint64) (crosspile.Address, error) {
	addr, nonce, err := RequesterAddress(authority, seed)
	if err != nil {
		return nil, err
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "requester %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	r := Requester{
		Authority: authority,
		Oracle:    oracle,
		Seed:      seed,
		Nonce:     uint32(nonce),
	}
	if err := c.bucket.Put(db, addr, &r); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c RequesterController) Get(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (*Requester, error) {
	var r Requester
	if err := c.bucket.One(db, requester, &r); err != nil {
		return nil, errors.Wrapf(err, "requester %s", requester)
	}
	return &r, nil
}

// RequestRandom starts a new request, dropping the previous value.
func (c RequesterController) RequestRandom(db crosspile.KVStore, requester, authority crosspile.Address) error {
	r, err := c.Get(db, requester)
	if err != nil {
		return err
	}
	if !r.Authority.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "not the requester authority")
	}
	if r.ActiveRequest {
		return errors.Wrapf(ErrRequestInFlight, "requester %s", requester)
	}
	r.ActiveRequest = true
	r.Random = nil
	return c.bucket.Put(db, requester, r)
}

// PublishRandom fulfills the pending request. Only the oracle can call it.
func (c RequesterController) PublishRandom(db crosspile.KVStore, requester, oracle crosspile.Address, random []byte) error {
	if len(random) != RandomLength {
		return errors.Wrapf(errors.ErrInput, "random value must be %d bytes", RandomLength)
	}
	r, err := c.Get(db, requester)
	if err != nil {
		return err
	}
	if !r.Oracle.Equals(oracle) {
		return errors.Wrap(errors.ErrUnauthorized, "not the requester oracle")
	}
	if !r.ActiveRequest {
		return errors.Wrapf(ErrNoRequest, "requester %s", requester)
	}
	r.ActiveRequest = false
	r.Random = append([]byte(nil), random...)
	r.Count++
	return c.bucket.Put(db, requester, r)
}

// TransferAuthority hands the right to issue requests over to another
// identity.
func (c RequesterController) TransferAuthority(db crosspile.KVStore, requester, authority, newAuthority crosspile.Address) error {
	if err := newAuthority.Validate(); err != nil {
		return errors.Wrap(err, "new authority")
	}
	r, err := c.Get(db, requester)
	if err != nil {
		return err
	}
	if !r.Authority.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "not the requester authority")
	}
	r.Authority = newAuthority
	return c.bucket.Put(db, requester, r)
}

func (c RequesterController) IsFulfilled(db crosspile.ReadOnlyKVStore, requester crosspile.Address) (bool, error) {
	r, err := c.Get(db, requester)
	if err != nil {
		return false, err
	}
	return r.Fulfilled(), nil
}

// ReadValue returns the published value, or ErrNotFulfilled if there is
// none.
func (c RequesterController) ReadValue(db crosspile.ReadOnlyKVStore, requester crosspile.Address) ([]byte, error) {
	r, err := c.Get(db, requester)
	if err != nil {
		return nil, err
	}
	if !r.Fulfilled() {
		return nil, errors.Wrapf(ErrNotFulfilled, "requester %s", requester)
	}
	return r.Random, nil
}
