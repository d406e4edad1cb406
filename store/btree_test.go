package store

import (
	"testing"
)

func TestBTreeConformance(t *testing.T) {
	RunConformance(t, func() (CacheableKVStore, func()) {
		devnull := BTreeCacheable{EmptyKVStore{}}
		return devnull.CacheWrap(), func() {}
	})
}
