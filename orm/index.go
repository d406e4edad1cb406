package orm

import (
	"bytes"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ crosspile.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db crosspile.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case s{true, false}:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case s{false, true}:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or error
func (i Index) GetAt(db crosspile.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	key := i.IndexKey(index)
	val, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

// getPrefix returns all references that have an index that
// begins with a given prefix
func (i Index) getPrefix(db crosspile.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	models, err := queryPrefix(db, i.IndexKey(prefix))
	if err != nil {
		return nil, err
	}
	var data [][]byte
	for _, m := range models {
		if i.unique {
			data = append(data, m.Value)
			continue
		}
		var refs MultiRef
		if err := refs.Unmarshal(m.Value); err != nil {
			return nil, err
		}
		data = append(data, refs.Refs...)
	}
	return data, nil
}

// Query handles queries from the QueryRouter
func (i Index) Query(db crosspile.ReadOnlyKVStore, mod string, data []byte) ([]crosspile.Model, error) {
	switch mod {
	case crosspile.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case crosspile.PrefixQueryMod:
		refs, err := i.getPrefix(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

func (i Index) loadRefs(db crosspile.ReadOnlyKVStore, refs [][]byte) ([]crosspile.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]crosspile.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = crosspile.Pair(key, value)
	}
	return res, nil
}

func (i Index) move(db crosspile.KVStore, prev Object, save Object) error {
	// if the primary key is not equal, we have a problem
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	// check if the key has changed
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, oldKey, prev.Key()); err != nil {
		return err
	}
	return i.insert(db, newKey, save.Key())
}

func (i Index) remove(db crosspile.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		// if something else was here, don't delete
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	// otherwise, remove one from a list....
	data := new(MultiRef)
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	// nothing left, delete this key
	if data.Size() == 0 {
		return db.Delete(key)
	}
	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}

func (i Index) insert(db crosspile.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	// otherwise, add one to a list....
	data := new(MultiRef)
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}
