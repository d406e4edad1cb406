package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/gconf"
)

// confPkg is the gconf key of the challenge configuration.
const confPkg = "challenge"

// Configuration of the challenge extension.
type Configuration struct {
	// Owner is allowed to replace the configuration.
	Owner crosspile.Address `json:"owner"`
	// InitiatorOnlyDecline forbids the acceptor from declining its own
	// offer.
	InitiatorOnlyDecline bool `json:"initiator_only_decline"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	return errors.AppendField(nil, "Owner", c.Owner.Validate())
}

func (c *Configuration) GetOwner() crosspile.Address {
	return c.Owner
}

// loadConfiguration returns the stored configuration. Without one the
// defaults apply.
func loadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, err
	}
}
