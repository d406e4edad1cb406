package utils

import (
	"time"

	"github.com/iov-one/crosspile"
)

// Logging writes a log entry for every processed transaction with its
// message path, duration and error if any.
type Logging struct{}

var _ crosspile.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs failures at info and success at debug level.
func (Logging) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs failures at error and success at info level.
func (Logging) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx crosspile.Context, tx crosspile.Tx, start time.Time, msg string, err error, check bool) {
	logger := crosspile.GetLogger(ctx).With(
		"path", crosspile.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// An entry is emitted even for an empty message, the key values are
	// what matters.
	switch {
	case err != nil && check:
		logger.Info(msg, "err", err)
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
