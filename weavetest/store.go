package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/store/iavl"
)

// CommitKVStore returns an iavl commit store backed by goleveldb in a
// temporary directory, the same engine the daemon runs on. Call cleanup
// once done.
func CommitKVStore(t testing.TB) (db crosspile.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "crosspile")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() { os.RemoveAll(dbpath) }
}
