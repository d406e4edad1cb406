package weavetest

import "github.com/iov-one/crosspile"

// Decorator passes every call to the next handler unless CheckErr or
// DeliverErr stops it first.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ crosspile.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns h behind the single decorator d.
func Decorate(h crosspile.Handler, d crosspile.Decorator) crosspile.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   crosspile.Handler
	decorator crosspile.Decorator
}

func (d decorated) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
