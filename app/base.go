package app

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage
// and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder crosspile.TxDecoder
	handler crosspile.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder crosspile.TxDecoder,
	handler crosspile.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx decodes the transaction and passes it to the handler using the
// deliver cache.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return crosspile.DeliverTxError(err, b.debug)
	}

	ctx := crosspile.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", crosspile.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return crosspile.DeliverOrError(res, err, b.debug)
}

// CheckTx decodes the transaction and passes it to the handler using the
// check cache.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return crosspile.CheckTxError(err, b.debug)
	}

	ctx := crosspile.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", crosspile.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return crosspile.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx crosspile.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
