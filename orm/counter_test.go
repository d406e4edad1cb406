package orm

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// Counter is a minimal model used to test buckets.
type Counter struct {
	Owner []byte
	Count int64
}

var _ Model = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, c)
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *Counter) Copy() Model {
	return &Counter{Owner: c.Owner, Count: c.Count}
}

func counterOwner(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Owner, nil
}
