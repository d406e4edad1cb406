package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/tendermint/tendermint/libs/log"
)

// ValidateCmd loads each given genesis file into an in memory store and
// reports the first one that cannot be initialized.
func ValidateCmd(ini crosspile.Initializer, logger log.Logger, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no genesis file given")
	}
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
		logger.Info("Genesis valid", "path", path)
	}
	return nil
}

func validateGenesis(ini crosspile.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		State crosspile.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if genesis.State == nil {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}

	// the result is discarded
	db := store.MemStore()
	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
