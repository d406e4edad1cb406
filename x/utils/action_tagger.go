package utils

import (
	"github.com/iov-one/crosspile"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key set by the ActionTagger.
const ActionKey = "action"

// ActionTagger adds an `action = msg.Path()` tag to every successful
// deliver result so clients can subscribe to a single transition kind, for
// example every revealed winner.
type ActionTagger struct{}

var _ crosspile.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
