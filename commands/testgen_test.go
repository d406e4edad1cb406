package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

func TestTestGen(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "fixtures")
	examples := []Example{{Filename: "sample", Obj: &sample{Name: "vault", Count: 7}}}
	require.NoError(t, TestGenCmd(examples, []string{out}))

	js, err := ioutil.ReadFile(filepath.Join(out, "sample.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "vault", "count": 7}`, string(js))

	bin, err := ioutil.ReadFile(filepath.Join(out, "sample.bin"))
	require.NoError(t, err)
	var got sample
	require.NoError(t, crosspile.Codec.UnmarshalBinaryBare(bin, &got))
	assert.Equal(t, sample{Name: "vault", Count: 7}, got)
}
