package crosspile_test

import (
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverOrError(t *testing.T) {
	ok := &crosspile.DeliverResult{
		Data: []byte("addr"),
		Log:  "all good",
		Tags: []common.KVPair{{Key: []byte("challenge"), Value: []byte("abc")}},
	}
	res := crosspile.DeliverOrError(ok, nil, false)
	assert.EqualValues(t, 0, res.Code)
	assert.Equal(t, []byte("addr"), res.Data)
	assert.Len(t, res.Tags, 1)

	res = crosspile.DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "not initiator"), false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Contains(t, res.Log, "cannot deliver tx")

	parsed, err := crosspile.ParseDeliverOrError(res)
	assert.Nil(t, parsed)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestParseDeliverSuccess(t *testing.T) {
	parsed, err := crosspile.ParseDeliverOrError(crosspile.DeliverResult{Data: []byte{1}}.ToABCI())
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, parsed.Data)
}

func TestCheckOrError(t *testing.T) {
	res := crosspile.CheckOrError(crosspile.NewCheck(100, "fine"), nil, false)
	assert.EqualValues(t, 0, res.Code)
	assert.EqualValues(t, 100, res.GasWanted)

	res = crosspile.CheckOrError(nil, errors.ErrNotFound, false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	assert.Contains(t, res.Log, "cannot check tx")
}
