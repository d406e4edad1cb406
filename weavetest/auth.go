package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/crosspile"
)

// Auth is a mock implementing x.Authenticator interface.
//
// All referenced conditions are authenticated, whether declared with Signer
// or Signers.
type Auth struct {
	// Signer is a shortcut for authenticating a single party.
	Signer crosspile.Condition
	// Signers represents an authentication of multiple signers.
	Signers []crosspile.Condition
}

func (a *Auth) GetConditions(crosspile.Context) []crosspile.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]crosspile.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx crosspile.Context, addr crosspile.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface that reads the
// conditions from the context. Use SetConditions to authenticate a party for
// a single call.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx crosspile.Context, conds ...crosspile.Condition) crosspile.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx crosspile.Context) []crosspile.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]crosspile.Condition)
	if !ok {
		panic(fmt.Sprintf("want []crosspile.Condition, got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx crosspile.Context, addr crosspile.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
