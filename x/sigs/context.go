package sigs

import (
	"context"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this package can authenticate a signer.
func withSigners(ctx crosspile.Context, signers []crosspile.Condition) crosspile.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the conditions of all verified signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx crosspile.Context) []crosspile.Condition {
	val, _ := ctx.Value(contextKeySigners).([]crosspile.Condition)
	return val
}

func (a Authenticate) HasAddress(ctx crosspile.Context, addr crosspile.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
