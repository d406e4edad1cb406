package oracle

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/derive"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
)

const (
	// BucketName is where the requesters are stored.
	BucketName = "requester"

	// RandomLength is the length of every published value.
	RandomLength = 64
)

// Requester tracks the randomness requests of a single authority.
type Requester struct {
	Authority     crosspile.Address `json:"authority"`
	Oracle        crosspile.Address `json:"oracle"`
	ActiveRequest bool              `json:"active_request"`
	Random        []byte            `json:"random"`
	Count         uint64            `json:"count"`
	Seed          uint64            `json:"seed"`
	Nonce         uint32            `json:"nonce"`
}

var _ orm.Model = (*Requester)(nil)

func (r *Requester) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(r)
}

func (r *Requester) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, r)
}

func (r *Requester) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", r.Authority.Validate())
	errs = errors.AppendField(errs, "Oracle", r.Oracle.Validate())
	if r.Nonce > 255 {
		errs = errors.AppendField(errs, "Nonce", errors.ErrInput)
	}
	switch {
	case r.ActiveRequest && len(r.Random) != 0:
		errs = errors.AppendField(errs, "Random", errors.Wrap(errors.ErrState, "pending request holds a value"))
	case len(r.Random) != 0 && len(r.Random) != RandomLength:
		errs = errors.AppendField(errs, "Random", errors.Wrapf(errors.ErrInput, "want %d bytes", RandomLength))
	}
	return errs
}

func (r *Requester) Copy() orm.Model {
	cpy := *r
	cpy.Authority = r.Authority.Clone()
	cpy.Oracle = r.Oracle.Clone()
	cpy.Random = append([]byte(nil), r.Random...)
	return &cpy
}

// Fulfilled returns true when a published value is available.
func (r *Requester) Fulfilled() bool {
	return !r.ActiveRequest && len(r.Random) == RandomLength
}

// RequesterAddress derives the address of the requester created by given
// authority with given seed.
func RequesterAddress(authority crosspile.Address, seed uint64) (crosspile.Address, uint8, error) {
	return derive.FindAddress(derive.SeedRequester, authority, derive.Uint64Seed(seed))
}

// NewBucket returns the bucket holding requesters by their derived address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Requester{})
}
