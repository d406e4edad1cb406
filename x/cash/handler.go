package cash

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x"
)

const (
	createMintCost int64 = 50
	mintToCost     int64 = 50
	transferCost   int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package
func RegisterRoutes(r crosspile.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&CreateMintMsg{}, CreateMintHandler{auth: auth, control: control})
	r.Handle(&MintToMsg{}, MintToHandler{auth: auth, control: control})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, control: control})
}

// RegisterQuery registers mints under "/mints" and token accounts under
// "/tokens", with the owner index under "/tokens/owner".
func RegisterQuery(qr crosspile.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("tokens", qr)
}

// CreateMintHandler declares new tokens.
type CreateMintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.control.CreateMint(db, msg.Authority, msg.Symbol, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{Data: addr}, nil
}

func (h CreateMintHandler) validate(ctx crosspile.Context, tx crosspile.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, nil
}

// MintToHandler issues tokens. Only the mint authority can use it.
type MintToHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MintTo(db, msg.Mint, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{}, nil
}

func (h MintToHandler) validate(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	mint, err := h.control.GetMint(db, msg.Mint)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	return &msg, nil
}

// TransferHandler moves tokens between owners.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Mint, msg.Amount); err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx crosspile.Context, tx crosspile.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
