package sigs

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

const signatureVerifyCost = 500

// RegisterQuery will register the signer accounts as "/auth"
func RegisterQuery(qr crosspile.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and adds the signers to the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ crosspile.Decorator = Decorator{}

// NewDecorator returns a decorator that requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	ctx, signers, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// Signature verification is the most expensive step, charge for every
	// valid signature.
	res.GasAllocated += int64(signers * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (crosspile.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "unsigned transaction")
	}
	signers, err := VerifyTxSignatures(db, stx, crosspile.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
