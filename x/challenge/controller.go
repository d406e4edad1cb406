package challenge

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/orm"
	"github.com/iov-one/crosspile/x/cash"
)

// Controller runs the challenge state machine. Each method is one
// transition: it checks the caller and the current state before any write
// and leaves the store untouched when it fails that way.
type Controller interface {
	Get(db crosspile.ReadOnlyKVStore, id crosspile.Address) (*Challenge, error)
	CanOpen(db crosspile.ReadOnlyKVStore, initiator, mint crosspile.Address, amount uint64, requester crosspile.Address) error
	CanAccept(db crosspile.ReadOnlyKVStore, id, acceptor, mint crosspile.Address, amount uint64) error
	NewChallenge(db crosspile.KVStore, now crosspile.UnixTime, initiator, mint crosspile.Address, amount uint64, requester crosspile.Address) (crosspile.Address, error)
	AcceptChallenge(db crosspile.KVStore, id, acceptor, mint crosspile.Address, amount uint64) error
	ApproveAcceptorWager(db crosspile.KVStore, id, caller crosspile.Address) error
	DeclineAcceptorWager(db crosspile.KVStore, id, caller crosspile.Address) error
	RevealWinner(db crosspile.KVStore, id, caller crosspile.Address) (Party, crosspile.Address, error)
	CancelBeforeAcceptor(db crosspile.KVStore, id, caller crosspile.Address) error
	CancelAfterAcceptor(db crosspile.KVStore, id, caller crosspile.Address) error
}

// ChallengeController is the bucket backed Controller.
type ChallengeController struct {
	bucket orm.ModelBucket
	vaults VaultController
	random randomness
}

var _ Controller = ChallengeController{}

// NewController returns a challenge controller escrowing tokens with the
// token custody and drawing randomness from source.
func NewController(tokens cash.Controller, source RandomnessSource) ChallengeController {
	return ChallengeController{
		bucket: NewBucket(),
		vaults: NewVaultController(tokens),
		random: randomness{src: source},
	}
}

func (c ChallengeController) Get(db crosspile.ReadOnlyKVStore, id crosspile.Address) (*Challenge, error) {
	var ch Challenge
	if err := c.bucket.One(db, id, &ch); err != nil {
		return nil, errors.Wrapf(err, "challenge %s", id)
	}
	return &ch, nil
}

// CanOpen runs every guard of NewChallenge without writing.
func (c ChallengeController) CanOpen(
	db crosspile.ReadOnlyKVStore,
	initiator, mint crosspile.Address,
	amount uint64,
	requester crosspile.Address,
) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "wager must be positive")
	}
	id, _, err := ChallengeAddress(initiator)
	if err != nil {
		return err
	}
	switch err := c.bucket.Has(db, id); {
	case err == nil:
		return errors.Wrapf(ErrDuplicateChallenge, "challenge %s", id)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := c.random.checkBindable(db, requester, initiator); err != nil {
		return err
	}
	return c.vaults.CanDeposit(db, initiator, mint, amount)
}

// NewChallenge opens a challenge at the initiator's derived address and
// escrows the initiator stake. The initiator must be the authority of the
// requester, which is handed over to the challenge.
func (c ChallengeController) NewChallenge(
	db crosspile.KVStore,
	now crosspile.UnixTime,
	initiator, mint crosspile.Address,
	amount uint64,
	requester crosspile.Address,
) (crosspile.Address, error) {
	if err := c.CanOpen(db, initiator, mint, amount, requester); err != nil {
		return nil, err
	}
	id, nonce, err := ChallengeAddress(initiator)
	if err != nil {
		return nil, err
	}
	vault, err := c.vaults.Deposit(db, InitiatorRole, initiator, id, mint, amount)
	if err != nil {
		return nil, err
	}
	if err := c.random.bind(db, requester, initiator, id); err != nil {
		return nil, errors.Wrap(err, "bind requester")
	}
	ch := Challenge{
		Initiator:            initiator,
		InitiatorTokensMint:  mint,
		InitiatorTokensVault: vault.Address,
		InitiatorWagerAmount: amount,
		InitiatorVaultNonce:  uint32(vault.Nonce),
		Requester:            requester,
		Nonce:                uint32(nonce),
		CreatedAt:            now,
	}
	if err := c.bucket.Put(db, id, &ch); err != nil {
		return nil, err
	}
	return id, nil
}

// CanAccept runs every guard of AcceptChallenge without writing.
func (c ChallengeController) CanAccept(db crosspile.ReadOnlyKVStore, id, acceptor, mint crosspile.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "wager must be positive")
	}
	if err := acceptor.Validate(); err != nil {
		return errors.Wrap(err, "acceptor")
	}
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := ch.canAccept(); err != nil {
		return err
	}
	return c.vaults.CanDeposit(db, acceptor, mint, amount)
}

// AcceptChallenge matches an open challenge and escrows the acceptor stake.
// The stake does not need to mirror the initiator's.
func (c ChallengeController) AcceptChallenge(db crosspile.KVStore, id, acceptor, mint crosspile.Address, amount uint64) error {
	if err := c.CanAccept(db, id, acceptor, mint, amount); err != nil {
		return err
	}
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	vault, err := c.vaults.Deposit(db, AcceptorRole, acceptor, id, mint, amount)
	if err != nil {
		return err
	}
	ch.Acceptor = acceptor
	ch.AcceptorTokensMint = mint
	ch.AcceptorTokensVault = vault.Address
	ch.AcceptorWagerAmount = amount
	ch.AcceptorVaultNonce = uint32(vault.Nonce)
	return c.bucket.Put(db, id, ch)
}

// ApproveAcceptorWager commits both stakes and requests randomness.
func (c ChallengeController) ApproveAcceptorWager(db crosspile.KVStore, id, caller crosspile.Address) error {
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := ch.canApprove(caller); err != nil {
		return err
	}
	if err := c.random.requestRandomness(db, ch.Requester, id); err != nil {
		return err
	}
	ch.AcceptorWagerApproved = true
	return c.bucket.Put(db, id, ch)
}

// DeclineAcceptorWager refunds the acceptor and reopens the challenge.
func (c ChallengeController) DeclineAcceptorWager(db crosspile.KVStore, id, caller crosspile.Address) error {
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := ch.canDecline(caller, conf.InitiatorOnlyDecline); err != nil {
		return err
	}
	if _, err := c.vaults.Refund(db, vaultOf(ch, id, AcceptorRole), ch.Acceptor); err != nil {
		return err
	}
	ch.clearAcceptor()
	return c.bucket.Put(db, id, ch)
}

// RevealWinner settles an approved challenge once the randomness is
// published. Both stakes go to the winner and the challenge is closed.
func (c ChallengeController) RevealWinner(db crosspile.KVStore, id, caller crosspile.Address) (Party, crosspile.Address, error) {
	ch, err := c.Get(db, id)
	if err != nil {
		return Initiator, nil, err
	}
	if err := ch.canReveal(caller); err != nil {
		return Initiator, nil, err
	}
	ready, err := c.random.isFulfilled(db, ch.Requester)
	if err != nil {
		return Initiator, nil, err
	}
	if !ready {
		return Initiator, nil, errors.Wrapf(ErrRandomnessNotReady, "requester %s", ch.Requester)
	}
	value, err := c.random.readValue(db, ch.Requester)
	if err != nil {
		return Initiator, nil, err
	}
	party, err := Winner(value)
	if err != nil {
		return Initiator, nil, err
	}
	winner := ch.Initiator
	if party == Acceptor {
		winner = ch.Acceptor
	}
	for _, role := range []Role{InitiatorRole, AcceptorRole} {
		if _, err := c.vaults.Payout(db, vaultOf(ch, id, role), winner); err != nil {
			return Initiator, nil, err
		}
	}
	if err := c.close(db, id, ch); err != nil {
		return Initiator, nil, err
	}
	return party, winner, nil
}

// CancelBeforeAcceptor refunds the initiator and closes an unmatched
// challenge.
func (c ChallengeController) CancelBeforeAcceptor(db crosspile.KVStore, id, caller crosspile.Address) error {
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := ch.canCancelBeforeAcceptor(caller); err != nil {
		return err
	}
	if _, err := c.vaults.Refund(db, vaultOf(ch, id, InitiatorRole), ch.Initiator); err != nil {
		return err
	}
	return c.close(db, id, ch)
}

// CancelAfterAcceptor refunds both parties and closes a matched challenge
// that was not approved yet.
func (c ChallengeController) CancelAfterAcceptor(db crosspile.KVStore, id, caller crosspile.Address) error {
	ch, err := c.Get(db, id)
	if err != nil {
		return err
	}
	if err := ch.canCancelAfterAcceptor(caller); err != nil {
		return err
	}
	if _, err := c.vaults.Refund(db, vaultOf(ch, id, InitiatorRole), ch.Initiator); err != nil {
		return err
	}
	if _, err := c.vaults.Refund(db, vaultOf(ch, id, AcceptorRole), ch.Acceptor); err != nil {
		return err
	}
	return c.close(db, id, ch)
}

// close returns the requester to the initiator and removes the record.
func (c ChallengeController) close(db crosspile.KVStore, id crosspile.Address, ch *Challenge) error {
	if err := c.random.release(db, ch.Requester, id, ch.Initiator); err != nil {
		return errors.Wrap(err, "release requester")
	}
	return c.bucket.Delete(db, id)
}
