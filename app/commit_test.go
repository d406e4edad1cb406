package app

import (
	"testing"

	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStore(t *testing.T) {
	cs := NewCommitStore(iavl.MockCommitStore())

	info, err := cs.CommitInfo()
	require.NoError(t, err)
	assert.EqualValues(t, 0, info.Version)

	require.NoError(t, cs.DeliverStore().Set([]byte("vault"), []byte("full")))
	require.NoError(t, cs.CheckStore().Set([]byte("pending"), []byte("x")))

	// nothing is visible before commit
	v, err := cs.QueryStore().Get([]byte("vault"))
	require.NoError(t, err)
	assert.Nil(t, v)

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)

	v, err = cs.QueryStore().Get([]byte("vault"))
	require.NoError(t, err)
	assert.Equal(t, []byte("full"), v)

	// check state is dropped, deliver state persisted
	v, err = cs.CheckStore().Get([]byte("pending"))
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = cs.CheckStore().Get([]byte("vault"))
	require.NoError(t, err)
	assert.Equal(t, []byte("full"), v)

	info, err = cs.CommitInfo()
	require.NoError(t, err)
	assert.Equal(t, id, info)
}

func TestChainID(t *testing.T) {
	cs := NewCommitStore(iavl.MockCommitStore())
	db := cs.DeliverStore()

	assert.Equal(t, "", mustLoadChainID(db))

	err := saveChainID(db, "x")
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, saveChainID(db, "crosspile-test"))
	assert.Equal(t, "crosspile-test", mustLoadChainID(db))

	err = saveChainID(db, "crosspile-other")
	assert.True(t, errors.ErrImmutable.Is(err))
	assert.Equal(t, "crosspile-test", mustLoadChainID(db))
}

func TestSplitPath(t *testing.T) {
	cases := map[string]struct {
		path, wantPath, wantMod string
	}{
		"plain":    {"/challenges", "/challenges", ""},
		"prefix":   {"/challenges?prefix", "/challenges", "prefix"},
		"index":    {"/challenges/acceptor?prefix", "/challenges/acceptor", "prefix"},
		"root":     {"/", "/", ""},
		"two mods": {"/a?b?c", "/a", "b?c"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, m := splitPath(tc.path)
			assert.Equal(t, tc.wantPath, p)
			assert.Equal(t, tc.wantMod, m)
		})
	}
}
