package orm

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// RegisterQuery exposes the raw store under "/". Keys are full database
// keys, including the bucket prefix.
func RegisterQuery(qr crosspile.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db crosspile.ReadOnlyKVStore, mod string, data []byte) ([]crosspile.Model, error) {
	switch mod {
	case crosspile.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []crosspile.Model{crosspile.Pair(data, value)}, nil
	case crosspile.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
