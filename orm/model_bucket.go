package orm

import (
	"reflect"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db crosspile.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db crosspile.ReadOnlyKVStore, key []byte) error

	// ByIndex returns the primary keys of all entities indexed under
	// given key by the named index.
	ByIndex(db crosspile.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error)

	// Put saves given model in the database.
	Put(db crosspile.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db crosspile.KVStore, key []byte) error

	// Register registers this buckets content to be accessible via query
	// requests under the given name.
	Register(name string, r crosspile.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance. This implementation relies on
// a bucket instance.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

func (mb *modelBucket) Register(name string, r crosspile.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db crosspile.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db crosspile.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would cause the store API to panic.
		return errors.ErrNotFound
	}
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db crosspile.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error) {
	idx, ok := mb.b.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}
	return idx.GetAt(db, key)
}

func (mb *modelBucket) Put(db crosspile.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db crosspile.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

var _ ModelBucket = (*modelBucket)(nil)
