package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// requireKey fails unless the app state carries the key.
type requireKey string

func (k requireKey) FromGenesis(opts crosspile.Options, db crosspile.KVStore) error {
	if opts[string(k)] == nil {
		return errors.Wrapf(errors.ErrEmpty, "missing %q", string(k))
	}
	return db.Set([]byte(k), opts[string(k)])
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(p, []byte(content), 0600))
		return p
	}
	good := write("good.json", `{"app_state": {"oracle": {"requesters": []}}}`)
	missing := write("missing.json", `{"app_state": {"cash": {}}}`)
	empty := write("empty.json", `{"chain_id": "x"}`)
	broken := write("broken.json", `{"app_state": `)

	logger := log.NewNopLogger()
	ini := requireKey("oracle")

	assert.NoError(t, ValidateCmd(ini, logger, []string{good}))
	assert.True(t, errors.ErrEmpty.Is(ValidateCmd(ini, logger, []string{good, missing})))
	assert.True(t, errors.ErrEmpty.Is(ValidateCmd(ini, logger, []string{empty})))
	assert.True(t, errors.ErrInput.Is(ValidateCmd(ini, logger, []string{broken})))
	assert.True(t, errors.ErrEmpty.Is(ValidateCmd(ini, logger, nil)))
}
