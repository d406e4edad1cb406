package crosspile

import (
	"github.com/iov-one/crosspile/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is what a handler returns when a transaction executes.
// Failures are always reported through the error return, never here.
type DeliverResult struct {
	// Data carries the handler output, for example a new challenge address.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and let clients search for
	// transactions touching a given key.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags, GasUsed: d.GasUsed}
}

// CheckResult is what a handler returns when a transaction passes the
// mempool checks.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the work budget reported as GasWanted.
	GasAllocated int64
}

func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gasAllocated, Log: log}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverOrError builds the DeliverTx response for a handler outcome.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError builds the CheckTx response for a handler outcome.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// ParseDeliverOrError turns a DeliverTx response back into a result, or
// into the registered error matching its code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	d := DeliverResult{Data: res.Data, Log: res.Log, Tags: res.Tags, GasUsed: res.GasUsed}
	return &d, nil
}

// DeliverTxError encodes err for DeliverTx. Unless debug is set, internal
// errors are redacted by errors.ABCIInfo.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciFailure("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError encodes err for CheckTx.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciFailure("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciFailure(call string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + call + " tx: " + log
}
