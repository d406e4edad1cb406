package orm

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(itr crosspile.Iterator) ([]crosspile.Model, error) {
	defer itr.Release()

	var res []crosspile.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, crosspile.Model{Key: key, Value: value})
	}
}

// queryPrefix returns all models with the given key prefix.
func queryPrefix(db crosspile.ReadOnlyKVStore, prefix []byte) ([]crosspile.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}
