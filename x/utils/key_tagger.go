package utils

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/store"
	"github.com/tendermint/tendermint/libs/common"
)

var (
	tagSet    = []byte("s")
	tagDelete = []byte("d")
)

// KeyTagger records every key modified by a successful deliver and appends
// it to the result tags. The tag value is "s" for a set and "d" for a
// delete.
type KeyTagger struct{}

var _ crosspile.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

func (KeyTagger) Check(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Checker) (*crosspile.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (KeyTagger) Deliver(ctx crosspile.Context, db crosspile.KVStore, tx crosspile.Tx, next crosspile.Deliverer) (*crosspile.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, changesToTags(record.KVPairs())...)
	return res, nil
}

func changesToTags(changes map[string][]byte) common.KVPairs {
	if len(changes) == 0 {
		return nil
	}
	tags := make(common.KVPairs, 0, len(changes))
	for k, v := range changes {
		tag := tagSet
		if v == nil {
			tag = tagDelete
		}
		tags = append(tags, common.KVPair{Key: []byte(k), Value: tag})
	}
	tags.Sort()
	return tags
}
