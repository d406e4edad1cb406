package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store and all info needed
// to perform queries and handshakes.
//
// It should be embedded in another struct for CheckTx,
// DeliverTx and initializing state from the genesis.
// ABCI steps that do not take user input (Info, InitChain,
// BeginBlock, EndBlock, Commit) cannot fail gracefully and panic instead.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	store *CommitStore

	initializer crosspile.Initializer
	queryRouter crosspile.QueryRouter

	// chainID is loaded from db in initialization,
	// saved once in InitChain
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext crosspile.Context

	// blockContext contains context info that is valid for the
	// current block (eg. height, time), reset on BeginBlock
	blockContext crosspile.Context
}

// NewStoreApp initializes this app into a ready state with some defaults.
//
// Panics if unable to properly load the state from the given store.
func NewStoreApp(name string, store crosspile.CommitKVStore,
	queryRouter crosspile.QueryRouter, baseContext crosspile.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID = mustLoadChainID(s.DeliverStore())
	if s.chainID != "" {
		s.baseContext = crosspile.WithChainID(s.baseContext, s.chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = crosspile.WithHeight(s.baseContext, info.Version)
	return s
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init crosspile.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and the base context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = crosspile.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use
func (s *StoreApp) BlockContext() crosspile.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods
func (s *StoreApp) DeliverStore() crosspile.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods
func (s *StoreApp) CheckStore() crosspile.CacheableKVStore {
	return s.store.CheckStore()
}

// parseAppState is called from InitChain, the first time the chain
// starts, and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string, init crosspile.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "app state previously loaded for chain %q", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, initialize the application before launching the chain")
	}

	var appState crosspile.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = crosspile.WithChainID(s.baseContext, chainID)

	if init == nil {
		return nil
	}
	return init.FromGenesis(appState, s.DeliverStore())
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash,
// as well as the abci name and version.
//
// The height is the block that holds the transactions, not the apphash itself.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		Version:          crosspile.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

/*
Query gets data from the app store.
A query request has the following elements:
* Path - the type of query
* Data - what to query, interpreted based on Path

Path may be "/", "/<bucket>", or "/<bucket>/<index>"
It may be followed by "?prefix" to make a prefix query.

Key and Value in Results are always serialized ResultSet
objects, able to support 0 to N values. They must be the
same size.
*/
func (s *StoreApp) Query(reqQuery abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(reqQuery.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		code, log := errors.ABCIInfo(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", reqQuery.Path), true)
		return abci.ResponseQuery{Code: code, Log: log}
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	models, err := qh.Query(s.store.QueryStore(), mod, reqQuery.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// Commit implements abci.Application
func (s *StoreApp) Commit() abci.ResponseCommit {
	commitID, err := s.store.Commit()
	if err != nil {
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)
	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain loads the genesis app state through the initializer and stores
// the chain id. It runs only once, on the very first start of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock sets up blockContext with the height and time of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := crosspile.WithHeight(s.baseContext, req.Header.GetHeight())
	ctx = crosspile.WithBlockTime(ctx, req.Header.GetTime())
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock returns no validator changes, the validator set is static.
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
