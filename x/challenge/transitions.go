package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// The guards below tell whether a transition is legal for the challenge in
// its current state. They never touch the store.

func (c *Challenge) canAccept() error {
	if c.Matched() {
		return errors.Wrapf(ErrAlreadyMatched, "acceptor %s", c.Acceptor)
	}
	return nil
}

func (c *Challenge) canApprove(caller crosspile.Address) error {
	if !c.Initiator.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the initiator can approve")
	}
	switch c.State() {
	case Created:
		return errors.Wrap(ErrNotMatched, "nothing to approve")
	case Approved:
		return ErrAlreadyApproved
	}
	return nil
}

func (c *Challenge) canDecline(caller crosspile.Address, initiatorOnly bool) error {
	allowed := c.Initiator.Equals(caller)
	if !initiatorOnly && c.Matched() && c.Acceptor.Equals(caller) {
		allowed = true
	}
	if !allowed {
		return errors.Wrap(errors.ErrUnauthorized, "caller cannot decline")
	}
	switch c.State() {
	case Created:
		return errors.Wrap(ErrNotMatched, "nothing to decline")
	case Approved:
		return errors.Wrap(ErrAlreadyApproved, "wager is committed")
	}
	return nil
}

func (c *Challenge) canReveal(caller crosspile.Address) error {
	if !c.IsParty(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only a party can reveal")
	}
	if c.State() != Approved {
		return errors.Wrapf(ErrNotApproved, "challenge is %s", c.State())
	}
	return nil
}

func (c *Challenge) canCancelBeforeAcceptor(caller crosspile.Address) error {
	if !c.Initiator.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the initiator can cancel")
	}
	if c.Matched() {
		return errors.Wrap(ErrAlreadyMatched, "use cancel after acceptor")
	}
	return nil
}

func (c *Challenge) canCancelAfterAcceptor(caller crosspile.Address) error {
	if !c.Initiator.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "only the initiator can cancel")
	}
	switch c.State() {
	case Created:
		return errors.Wrap(ErrNotMatched, "use cancel before acceptor")
	case Approved:
		return errors.Wrap(ErrAlreadyApproved, "wager is committed")
	}
	return nil
}
