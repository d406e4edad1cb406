package gconf

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// ReadStore is a subset of crosspile.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of crosspile.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is implemented by configurations that can be serialized.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by configurations that can be loaded from
// their binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is a serializable configuration object.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates and writes the configuration singleton of a package.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := confKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load reads the configuration singleton of a package. ErrNotFound is
// returned when none is stored.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig reads opts["conf"][pkg] into conf and saves it. ErrNotFound is
// returned if the genesis does not declare a configuration for pkg.
func InitConfig(db Store, opts crosspile.Options, pkg string, conf Configuration) error {
	var confOptions crosspile.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
