package oracle

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

const optKey = "oracle"

// GenesisRequester declares a requester in the genesis file.
type GenesisRequester struct {
	Authority crosspile.Address `json:"authority"`
	Oracle    crosspile.Address `json:"oracle"`
	Seed      uint64            `json:"seed"`
}

// Genesis is the "oracle" section of the genesis app state.
type Genesis struct {
	Requesters []GenesisRequester `json:"requesters"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ crosspile.Initializer = Initializer{}

func (Initializer) FromGenesis(opts crosspile.Options, db crosspile.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	control := NewController()
	for i, r := range gen.Requesters {
		if _, err := control.Initialize(db, r.Authority, r.Oracle, r.Seed); err != nil {
			return errors.Wrapf(err, "requester #%d", i)
		}
	}
	return nil
}
