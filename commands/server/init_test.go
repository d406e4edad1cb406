package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/crosspile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory holding a genesis file as written by
// tendermint init.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "crosspiled")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, "config"), 0755))
	genesis := `{"genesis_time": "2019-05-01T12:00:00Z", "chain_id": "test-chain-LgVOZ0", "validators": [{"power": "10"}]}`
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config", genesisFile), []byte(genesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func fixedOptions(args []string) (json.RawMessage, error) {
	return json.RawMessage(`{"cash": {"mints": []}}`), nil
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(fixedOptions, logger, home, nil))

	bz, err := ioutil.ReadFile(filepath.Join(home, "config", genesisFile))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))

	// keep old values, and add our values
	assert.Equal(t, `"test-chain-LgVOZ0"`, string(doc["chain_id"]))
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"cash": {"mints": []}}`, string(doc[appStateKey]))

	err = InitCmd(fixedOptions, logger, home, nil)
	assert.True(t, errors.ErrDuplicate.Is(err))
	assert.NoError(t, InitCmd(fixedOptions, logger, home, []string{"-f"}))
}

func TestInitWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "crosspiled")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(fixedOptions, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestParseStartFlags(t *testing.T) {
	sa, err := parseStartFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBind, sa.bind)
	assert.False(t, sa.debug)

	sa, err = parseStartFlags([]string{"-bind", "tcp://0.0.0.0:26658", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:26658", sa.bind)
	assert.True(t, sa.debug)

	_, err = parseStartFlags([]string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err))
}
