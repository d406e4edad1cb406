package oracle

import "github.com/iov-one/crosspile/errors"

var (
	ErrRequestInFlight = errors.Register(300, "randomness request in flight")
	ErrNoRequest       = errors.Register(301, "no pending randomness request")
	ErrNotFulfilled    = errors.Register(302, "randomness request not fulfilled")
)
