package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/gconf"
)

// Initializer loads the challenge configuration from the genesis file.
// Without one the defaults apply.
type Initializer struct{}

var _ crosspile.Initializer = Initializer{}

func (Initializer) FromGenesis(opts crosspile.Options, db crosspile.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, confPkg, &conf)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
