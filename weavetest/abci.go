package weavetest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/app"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Runner drives an ABCI application block by block. Transactions are
// serialized before being passed to the application, queries are decoded
// from result sets. Any failure of a non transaction step ends the test.
type Runner struct {
	chainID string
	height  int64
	now     time.Time
	t       Tester
	app     abci.Application
}

// NewRunner creates a Runner for the given application. The first block is
// created at the given time, each next one a second later.
func NewRunner(t Tester, app abci.Application, chainID string, genesisTime time.Time) *Runner {
	return &Runner{
		chainID: chainID,
		now:     genesisTime,
		t:       t,
		app:     app,
	}
}

// BlockApp is the transaction interface available within a block.
type BlockApp interface {
	DeliverTx(crosspile.Tx) (*crosspile.DeliverResult, error)
	CheckTx(crosspile.Tx) error
	crosspile.ReadOnlyKVStore
}

var _ BlockApp = (*Runner)(nil)

// InitChain serializes the genesis to JSON and loads it in its own block.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		r.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	changed := r.InBlock(func(BlockApp) error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          r.now,
			ChainId:       r.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		r.t.Fatalf("genesis did not change the state")
	}
}

// Height returns the height of the last created block.
func (r *Runner) Height() int64 {
	return r.height
}

// CheckTx serializes the transaction and runs it through the check phase.
func (r *Runner) CheckTx(tx crosspile.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	resp := r.app.CheckTx(raw)
	if resp.Code != errors.SuccessABCICode {
		return errors.ABCIError(resp.Code, resp.Log)
	}
	return nil
}

// DeliverTx serializes the transaction and runs it through the deliver
// phase. The result is decoded from the ABCI response.
func (r *Runner) DeliverTx(tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal transaction")
	}
	return crosspile.ParseDeliverOrError(r.app.DeliverTx(raw))
}

// InBlock begins a block and runs given function. All transactions executed
// within given function are part of the newly created block. Upon success
// the block is finished and changes committed.
//
// InBlock returns true if the application state was modified.
func (r *Runner) InBlock(executeTx func(BlockApp) error) bool {
	r.t.Helper()

	r.height++
	r.now = r.now.Add(time.Second)

	initialHash := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: r.chainID,
			Height:  r.height,
			Time:    r.now,
		},
	})

	if err := executeTx(r); err != nil {
		r.t.Fatalf("operation failed with %+v", err)
	}

	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})

	finalHash := r.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

var _ crosspile.ReadOnlyKVStore = (*Runner)(nil)

// Get reads a raw key from the last committed state.
func (r *Runner) Get(key []byte) ([]byte, error) {
	models, err := r.Query("/", key)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0].Value, nil
}

// Has returns true if a value is committed under the key.
func (r *Runner) Has(key []byte) (bool, error) {
	v, err := r.Get(key)
	return v != nil, err
}

// Iterator only supports iterating over the whole store.
func (r *Runner) Iterator(start, end []byte) (crosspile.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "iterator only implemented for entire range")
	}
	models, err := r.Query("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator iterates backwards over the whole store.
func (r *Runner) ReverseIterator(start, end []byte) (crosspile.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "iterator only implemented for entire range")
	}
	models, err := r.Query("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

// Query runs an ABCI query and decodes the result sets.
func (r *Runner) Query(path string, data []byte) ([]crosspile.Model, error) {
	resp := r.app.Query(abci.RequestQuery{Path: path, Data: data})
	if resp.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	return app.JoinResults(&keys, &values)
}
