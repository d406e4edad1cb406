package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store"
	"github.com/iov-one/crosspile/weavetest/assert"
)

type myconfig struct {
	Owner crosspile.Address `json:"owner"`
	Num   int64             `json:"num"`
	Flag  bool              `json:"flag"`
}

func (c *myconfig) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(c)
}

func (c *myconfig) Unmarshal(raw []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(raw, c)
}

func (c *myconfig) Validate() error {
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return c.Owner.Validate()
}

func (c *myconfig) GetOwner() crosspile.Address {
	return c.Owner
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got myconfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))

	want := myconfig{Owner: crosspile.NewAddress([]byte("owner")), Num: 3, Flag: true}
	assert.Nil(t, Save(db, "mypkg", &want))
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, want, got)

	assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &got))

	invalid := myconfig{Owner: want.Owner, Num: -1}
	assert.IsErr(t, errors.ErrInput, Save(db, "mypkg", &invalid))
}

func TestInitConfig(t *testing.T) {
	owner := crosspile.NewAddress([]byte("owner"))
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"mypkg": map[string]interface{}{
				"owner": owner,
				"num":   7,
			},
		},
	})
	assert.Nil(t, err)
	var opts crosspile.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	var conf myconfig
	assert.Nil(t, InitConfig(db, opts, "mypkg", &conf))

	var loaded myconfig
	assert.Nil(t, Load(db, "mypkg", &loaded))
	assert.Equal(t, myconfig{Owner: owner, Num: 7}, loaded)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "missing", &conf))
}
