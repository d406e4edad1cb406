package oracle

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/x"
)

const (
	initializeCost int64 = 50
	requestCost    int64 = 20
	publishCost    int64 = 20
	transferCost   int64 = 20
)

// RegisterRoutes will instantiate and register all handlers in this
// package
func RegisterRoutes(r crosspile.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, control: control})
	r.Handle(&RequestRandomMsg{}, RequestRandomHandler{auth: auth, control: control})
	r.Handle(&PublishRandomMsg{}, PublishRandomHandler{auth: auth, control: control})
	r.Handle(&TransferAuthorityMsg{}, TransferAuthorityHandler{auth: auth, control: control})
}

// RegisterQuery will register requesters as "/requesters"
func RegisterQuery(qr crosspile.QueryRouter) {
	NewBucket().Register("requesters", qr)
}

// InitializeHandler creates requesters.
type InitializeHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: initializeCost}, nil
}

func (h InitializeHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.control.Initialize(db, msg.Authority, msg.Oracle, msg.Seed)
	if err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{Data: addr}, nil
}

func (h InitializeHandler) validate(ctx crosspile.Context, tx crosspile.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, nil
}

// RequestRandomHandler starts a randomness request on behalf of the
// requester authority.
type RequestRandomHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = RequestRandomHandler{}

func (h RequestRandomHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: requestCost}, nil
}

func (h RequestRandomHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, r, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.RequestRandom(db, msg.Requester, r.Authority); err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{}, nil
}

func (h RequestRandomHandler) validate(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*RequestRandomMsg, *Requester, error) {
	var msg RequestRandomMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	r, err := h.control.Get(db, msg.Requester)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, r.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	if r.ActiveRequest {
		return nil, nil, errors.Wrapf(ErrRequestInFlight, "requester %s", msg.Requester)
	}
	return &msg, r, nil
}

// PublishRandomHandler lets the oracle fulfill a pending request.
type PublishRandomHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = PublishRandomHandler{}

func (h PublishRandomHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: publishCost}, nil
}

func (h PublishRandomHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, r, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.PublishRandom(db, msg.Requester, r.Oracle, msg.Random); err != nil {
		return nil, err
	}
	crosspile.GetLogger(ctx).Debug("randomness published", "requester", msg.Requester, "count", r.Count+1)
	return &crosspile.DeliverResult{}, nil
}

func (h PublishRandomHandler) validate(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*PublishRandomMsg, *Requester, error) {
	var msg PublishRandomMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	r, err := h.control.Get(db, msg.Requester)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, r.Oracle) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "oracle signature missing")
	}
	if !r.ActiveRequest {
		return nil, nil, errors.Wrapf(ErrNoRequest, "requester %s", msg.Requester)
	}
	return &msg, r, nil
}

// TransferAuthorityHandler changes the requester authority.
type TransferAuthorityHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = TransferAuthorityHandler{}

func (h TransferAuthorityHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferAuthorityHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, r, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.TransferAuthority(db, msg.Requester, r.Authority, msg.NewAuthority); err != nil {
		return nil, err
	}
	return &crosspile.DeliverResult{}, nil
}

func (h TransferAuthorityHandler) validate(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*TransferAuthorityMsg, *Requester, error) {
	var msg TransferAuthorityMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	r, err := h.control.Get(db, msg.Requester)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, r.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, r, nil
}
