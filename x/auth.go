package x

import (
	"github.com/iov-one/crosspile"
)

// Authenticator tells a handler which conditions authorized the
// transaction in ctx. Handlers receive it in their constructor and never
// look at signatures directly.
type Authenticator interface {
	// GetConditions lists every condition fulfilled by the transaction,
	// in signature order.
	GetConditions(crosspile.Context) []crosspile.Condition
	// HasAddress reports whether any fulfilled condition owns addr.
	HasAddress(crosspile.Context, crosspile.Address) bool
}

// MainSigner is the first fulfilled condition, or nil for an unsigned
// transaction.
func MainSigner(ctx crosspile.Context, auth Authenticator) crosspile.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
