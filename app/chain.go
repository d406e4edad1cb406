package app

import (
	"reflect"

	"github.com/iov-one/crosspile"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []crosspile.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...crosspile.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more Decorators. Nil entries are skipped so optional
// decorators can be passed inline.
func (d Decorators) Chain(chain ...crosspile.Decorator) Decorators {
	next := make([]crosspile.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

func isNil(d crosspile.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h crosspile.Handler) crosspile.Handler {
	// the first decorator in the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one decorator wrapped around a specific Handler.
type step struct {
	d    crosspile.Decorator
	next crosspile.Handler
}

var _ crosspile.Handler = step{}

func (s step) Check(ctx crosspile.Context, store crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx crosspile.Context, store crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
