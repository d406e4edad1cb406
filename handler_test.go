package crosspile_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type requester struct {
		Seed uint64 `json:"seed"`
	}
	cases := map[string]struct {
		json    string
		want    []requester
		wantErr *errors.Error
	}{
		"happy path": {
			json: `{"oracle": [{"seed": 1}, {"seed": 2}]}`,
			want: []requester{{Seed: 1}, {Seed: 2}},
		},
		"missing key is a noop": {
			json: `{"cash": {}}`,
		},
		"wrong value": {
			json:    `{"oracle": [{"seed": "one"}]}`,
			wantErr: errors.ErrInput,
		},
		"wrong body": {
			json:    `{"oracle": "adasda"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o crosspile.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got []requester
			err := o.ReadOptions("oracle", &got)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// keyInit writes its key, or fails when told to.
type keyInit struct {
	key string
	err error
}

func (k keyInit) FromGenesis(opts crosspile.Options, db crosspile.KVStore) error {
	if k.err != nil {
		return k.err
	}
	return db.Set([]byte(k.key), []byte("set"))
}

func TestChainInitializers(t *testing.T) {
	db := store.MemStore()
	ini := crosspile.ChainInitializers(keyInit{key: "cash"}, keyInit{key: "oracle"})
	assert.Nil(t, ini.FromGenesis(crosspile.Options{}, db))
	for _, k := range []string{"cash", "oracle"} {
		ok, err := db.Has([]byte(k))
		assert.Nil(t, err)
		assert.Equal(t, true, ok)
	}

	db = store.MemStore()
	ini = crosspile.ChainInitializers(keyInit{err: errors.ErrState}, keyInit{key: "challenge"})
	assert.IsErr(t, errors.ErrState, ini.FromGenesis(crosspile.Options{}, db))
	ok, err := db.Has([]byte("challenge"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}
