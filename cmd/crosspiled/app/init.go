package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/commands/server"
	"github.com/iov-one/crosspile/crypto"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x/cash"
	"github.com/iov-one/crosspile/x/challenge"
	"github.com/iov-one/crosspile/x/oracle"
	abci "github.com/tendermint/tendermint/abci/types"
)

const (
	defaultSymbol = "XPL"
	genesisSupply = 1000000000
)

// GenInitOptions produces the app_state of a development chain. One
// account owns the whole supply of a single mint, controls a randomness
// requester and owns the challenge configuration. It also serves as the
// oracle.
//
// Arguments are an optional mint symbol and an optional owner address.
// Without an address a new key is generated and its seed printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	symbol := defaultSymbol
	if len(args) > 0 {
		symbol = args[0]
	}

	var owner crosspile.Address
	if len(args) > 1 {
		addr, err := crosspile.ParseAddress(args[1])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		owner = addr
	} else {
		addr, secret, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(secret)
	}

	mint, err := cash.MintAddress(owner, symbol)
	if err != nil {
		return nil, errors.Wrap(err, "mint address")
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"cash": cash.Genesis{
			Mints: []cash.GenesisMint{
				{Authority: owner, Symbol: symbol, Decimals: 6},
			},
			Accounts: []cash.GenesisAccount{
				{Owner: owner, Mint: mint, Amount: genesisSupply},
			},
		},
		"oracle": oracle.Genesis{
			Requesters: []oracle.GenesisRequester{
				{Authority: owner, Oracle: owner, Seed: 1},
			},
		},
		"conf": dict{
			"challenge": challenge.Configuration{
				Owner: owner,
			},
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	application, err := Application(Stack(), dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(options.Logger)
	return application, nil
}

// GenerateKey returns the address of a new ed25519 key along with the hex
// encoded seed needed to restore it.
func GenerateKey() (crosspile.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	seed := privKey.GetEd25519()
	if len(seed) < 32 {
		return nil, "", errors.Wrap(errors.ErrHuman, "unexpected private key length")
	}
	return privKey.PublicKey().Address(), hex.EncodeToString(seed[:32]), nil
}
