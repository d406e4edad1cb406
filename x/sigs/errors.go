package sigs

import "github.com/iov-one/crosspile/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the next expected value of the signer.
var ErrInvalidSequence = errors.Register(20, "invalid sequence number")
