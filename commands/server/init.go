package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/crosspile/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagForce   = "f"
	appStateKey = "app_state"
	genesisFile = "genesis.json"
)

// GenOptions can parse command-line arguments to generate the
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd writes the app_state generated by gen into the tendermint
// genesis file found under <home>/config. An existing app_state is kept
// unless -f is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var force bool
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.BoolVar(&force, flagForce, false, "overwrite an existing app_state")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := filepath.Join(home, "config", genesisFile)
	if _, err := os.Stat(genFile); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "%s, run tendermint init first", genFile)
		}
		return errors.Wrap(err, "genesis file")
	}

	options, err := gen(fs.Args())
	if err != nil {
		return errors.Wrap(err, "cannot generate app_state")
	}

	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -f to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}
