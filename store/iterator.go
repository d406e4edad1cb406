package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/crosspile/errors"
)

// merge returns all models in the [start, end) range in ascending order.
// Cached writes take precedence over the backing store and cached deletes
// hide the backing value.
//
// The result is materialized so that writes to the cache while iterating
// never invalidate the iterator.
func (b BTreeCacheWrap) merge(start, end []byte) ([]Model, error) {
	below, err := collect(b.back, start, end)
	if err != nil {
		return nil, err
	}
	cached := ascendRange(b.bt, start, end)

	res := make([]Model, 0, len(below)+len(cached))
	i, j := 0, 0
	for i < len(below) || j < len(cached) {
		switch {
		case j >= len(cached):
			res = append(res, below[i])
			i++
		case i >= len(below):
			res = appendItem(res, cached[j])
			j++
		default:
			cmp := bytes.Compare(below[i].Key, cached[j].Key())
			if cmp < 0 {
				res = append(res, below[i])
				i++
				continue
			}
			// Equal keys are overwritten by the cache.
			if cmp == 0 {
				i++
			}
			res = appendItem(res, cached[j])
			j++
		}
	}
	return res, nil
}

// collect reads the whole range of the parent store.
func collect(kv ReadOnlyKVStore, start, end []byte) ([]Model, error) {
	it, err := kv.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Model{Key: key, Value: value})
	}
}

func ascendRange(bt *btree.BTree, start, end []byte) []keyer {
	var res []keyer
	visit := func(item btree.Item) bool {
		res = append(res, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(visit)
	case start == nil:
		bt.AscendLessThan(bkey{end}, visit)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, visit)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, visit)
	}
	return res
}

// appendItem adds the cached value unless it marks a deletion.
func appendItem(res []Model, item keyer) []Model {
	if s, ok := item.(setItem); ok {
		return append(res, Model{Key: s.key, Value: s.value})
	}
	return res
}
