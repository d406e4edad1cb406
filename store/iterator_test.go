package store

import (
	"testing"

	"github.com/iov-one/crosspile/weavetest/assert"
)

func TestCacheIteratorSurvivesWrites(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	assert.Nil(t, db.Set([]byte("b"), []byte("B")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	defer it.Release()

	// Deleting while iterating must not affect already created iterator.
	assert.Nil(t, cache.Delete([]byte("b")))

	key, _, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), key)
	key, _, err = it.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("b"), key)
}

func TestCacheReverseIteratorRelease(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.ReverseIterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	it.Release()
	assert.Nil(t, db.Delete([]byte("a")))
}
