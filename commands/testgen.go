/*
Package commands holds subcommands shared by the daemon.
*/
package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      interface{}
}

// TestGenCmd writes the JSON and the binary encoding of every example into
// the output directory, "testdata" unless given as the first argument.
// Clients use the files as fixtures for their own codecs.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "output directory")
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".json"), js, 0644); err != nil {
			return errors.Wrap(err, "write json")
		}

		bin, err := crosspile.Codec.MarshalBinaryBare(ex.Obj)
		if err != nil {
			return errors.Wrapf(err, "binary %s", ex.Filename)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".bin"), bin, 0644); err != nil {
			return errors.Wrap(err, "write binary")
		}
	}
	return nil
}
