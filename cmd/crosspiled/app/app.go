/*
Package app wires the extensions into the crosspile daemon: the
decorator chain, the message and query routers, the transaction
format and the genesis initializers.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/app"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
	"github.com/iov-one/crosspile/store/iavl"
	"github.com/iov-one/crosspile/x"
	"github.com/iov-one/crosspile/x/cash"
	"github.com/iov-one/crosspile/x/challenge"
	"github.com/iov-one/crosspile/x/oracle"
	"github.com/iov-one/crosspile/x/sigs"
	"github.com/iov-one/crosspile/x/utils"
)

// Name is reported by the ABCI Info call.
const Name = "crosspile"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain returns the decorators every transaction passes through before
// reaching the router.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failing message is rolled back
		// but the signer sequence is still bumped
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router dispatches every message of the cash, oracle and challenge
// extensions.
func Router(authFn x.Authenticator) *app.Router {
	tokens := cash.NewController()
	oracles := oracle.NewController()

	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, tokens)
	oracle.RegisterRoutes(r, authFn, oracles)
	challenge.RegisterRoutes(r, authFn, challenge.NewController(tokens, oracles))
	return r
}

// QueryRouter returns the query router exposing all buckets plus the raw
// store under "/".
func QueryRouter() crosspile.QueryRouter {
	r := crosspile.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		oracle.RegisterQuery,
		challenge.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers loads every extension section of the genesis app_state.
func Initializers() crosspile.Initializer {
	return crosspile.ChainInitializers(
		cash.Initializer{},
		oracle.Initializer{},
		challenge.Initializer{},
	)
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack() crosspile.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs the ABCI application over the database at dbPath.
// An empty path keeps all state in memory.
func Application(h crosspile.Handler, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (crosspile.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// a trailing ".db" is added by the backend
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
