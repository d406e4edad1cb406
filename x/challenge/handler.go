package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/gconf"
	"github.com/iov-one/crosspile/x"
)

const (
	newChallengeCost int64 = 300
	acceptCost       int64 = 300
	approveCost      int64 = 100
	declineCost      int64 = 50
	revealCost       int64 = 100
	cancelCost       int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package
func RegisterRoutes(r crosspile.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&NewChallengeMsg{}, NewChallengeHandler{auth: auth, control: control})
	r.Handle(&AcceptChallengeMsg{}, AcceptChallengeHandler{auth: auth, control: control})
	r.Handle(&ApproveAcceptorWagerMsg{}, ApproveHandler{auth: auth, control: control})
	r.Handle(&DeclineAcceptorWagerMsg{}, DeclineHandler{auth: auth, control: control})
	r.Handle(&RevealWinnerMsg{}, RevealHandler{auth: auth, control: control})
	r.Handle(&CancelBeforeAcceptorMsg{}, CancelBeforeAcceptorHandler{auth: auth, control: control})
	r.Handle(&CancelAfterAcceptorMsg{}, CancelAfterAcceptorHandler{auth: auth, control: control})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth))
}

// RegisterQuery will register challenges as "/challenges" and the acceptor
// index as "/challenges/acceptor"
func RegisterQuery(qr crosspile.QueryRouter) {
	NewBucket().Register("challenges", qr)
}

// callerOf returns the party of the challenge that signed the transaction.
// When no party signed, the main signer is returned so that the transition
// is refused for it.
func callerOf(ctx crosspile.Context, auth x.Authenticator, c *Challenge) crosspile.Address {
	if auth.HasAddress(ctx, c.Initiator) {
		return c.Initiator
	}
	if c.Matched() && auth.HasAddress(ctx, c.Acceptor) {
		return c.Acceptor
	}
	if signer := x.MainSigner(ctx, auth); signer != nil {
		return signer.Address()
	}
	return nil
}

func logTransition(ctx crosspile.Context, id crosspile.Address, state State, keyvals ...interface{}) {
	crosspile.GetLogger(ctx).Info("challenge transition",
		append([]interface{}{"challenge", id, "state", state}, keyvals...)...)
}

// NewChallengeHandler opens challenges.
type NewChallengeHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = NewChallengeHandler{}

func (h NewChallengeHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CanOpen(db, msg.Initiator, msg.Mint, msg.Amount, msg.Requester); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: newChallengeCost}, nil
}

// Deliver returns the challenge address as the result data.
func (h NewChallengeHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := crosspile.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	id, err := h.control.NewChallenge(db, now, msg.Initiator, msg.Mint, msg.Amount, msg.Requester)
	if err != nil {
		return nil, err
	}
	logTransition(ctx, id, Created, "initiator", msg.Initiator, "amount", msg.Amount)
	return &crosspile.DeliverResult{Data: id}, nil
}

func (h NewChallengeHandler) validate(ctx crosspile.Context, tx crosspile.Tx) (*NewChallengeMsg, error) {
	var msg NewChallengeMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Initiator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "initiator signature missing")
	}
	return &msg, nil
}

// AcceptChallengeHandler matches open challenges.
type AcceptChallengeHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = AcceptChallengeHandler{}

func (h AcceptChallengeHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CanAccept(db, msg.ChallengeID, msg.Acceptor, msg.Mint, msg.Amount); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: acceptCost}, nil
}

func (h AcceptChallengeHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.AcceptChallenge(db, msg.ChallengeID, msg.Acceptor, msg.Mint, msg.Amount); err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, Matched, "acceptor", msg.Acceptor, "amount", msg.Amount)
	return &crosspile.DeliverResult{}, nil
}

func (h AcceptChallengeHandler) validate(ctx crosspile.Context, tx crosspile.Tx) (*AcceptChallengeMsg, error) {
	var msg AcceptChallengeMsg
	if err := crosspile.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Acceptor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "acceptor signature missing")
	}
	return &msg, nil
}

// ApproveHandler approves the acceptor wager.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	var msg ApproveAcceptorWagerMsg
	ch, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := ch.canApprove(caller); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	var msg ApproveAcceptorWagerMsg
	_, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := h.control.ApproveAcceptorWager(db, msg.ChallengeID, caller); err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, Approved)
	return &crosspile.DeliverResult{}, nil
}

// DeclineHandler refunds the acceptor and reopens the challenge.
type DeclineHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = DeclineHandler{}

func (h DeclineHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	var msg DeclineAcceptorWagerMsg
	ch, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if err := ch.canDecline(caller, conf.InitiatorOnlyDecline); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: declineCost}, nil
}

func (h DeclineHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	var msg DeclineAcceptorWagerMsg
	_, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := h.control.DeclineAcceptorWager(db, msg.ChallengeID, caller); err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, Created, "declined_by", caller)
	return &crosspile.DeliverResult{}, nil
}

// RevealHandler settles approved challenges.
type RevealHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = RevealHandler{}

func (h RevealHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	var msg RevealWinnerMsg
	ch, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := ch.canReveal(caller); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: revealCost}, nil
}

// Deliver returns the winner address as the result data.
func (h RevealHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	var msg RevealWinnerMsg
	_, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	party, winner, err := h.control.RevealWinner(db, msg.ChallengeID, caller)
	if err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, Resolved, "winner", party, "address", winner)
	return &crosspile.DeliverResult{Data: winner, Log: party.String()}, nil
}

// CancelBeforeAcceptorHandler closes unmatched challenges.
type CancelBeforeAcceptorHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = CancelBeforeAcceptorHandler{}

func (h CancelBeforeAcceptorHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	var msg CancelBeforeAcceptorMsg
	ch, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := ch.canCancelBeforeAcceptor(caller); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelBeforeAcceptorHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	var msg CancelBeforeAcceptorMsg
	_, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := h.control.CancelBeforeAcceptor(db, msg.ChallengeID, caller); err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, CancelledUnmatched)
	return &crosspile.DeliverResult{}, nil
}

// CancelAfterAcceptorHandler closes matched challenges before approval.
type CancelAfterAcceptorHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ crosspile.Handler = CancelAfterAcceptorHandler{}

func (h CancelAfterAcceptorHandler) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	var msg CancelAfterAcceptorMsg
	ch, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := ch.canCancelAfterAcceptor(caller); err != nil {
		return nil, err
	}
	return &crosspile.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelAfterAcceptorHandler) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	var msg CancelAfterAcceptorMsg
	_, caller, err := loadTransition(ctx, h.auth, h.control, db, tx, &msg, &msg.ChallengeID)
	if err != nil {
		return nil, err
	}
	if err := h.control.CancelAfterAcceptor(db, msg.ChallengeID, caller); err != nil {
		return nil, err
	}
	logTransition(ctx, msg.ChallengeID, CancelledMatched)
	return &crosspile.DeliverResult{}, nil
}

// loadTransition loads the message into dest and the challenge it refers
// to, and resolves the calling party.
func loadTransition(
	ctx crosspile.Context,
	auth x.Authenticator,
	control Controller,
	db crosspile.ReadOnlyKVStore,
	tx crosspile.Tx,
	dest interface{},
	id *crosspile.Address,
) (*Challenge, crosspile.Address, error) {
	if err := crosspile.LoadMsg(tx, dest); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ch, err := control.Get(db, *id)
	if err != nil {
		return nil, nil, err
	}
	return ch, callerOf(ctx, auth, ch), nil
}
