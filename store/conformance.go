package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/crosspile/errors"
	"github.com/iov-one/crosspile/weavetest/assert"
)

// StoreFactory opens an empty store and returns a function releasing it.
type StoreFactory func() (CacheableKVStore, func())

// RunConformance checks what every CacheableKVStore must agree on: reads
// through cache layers, write and discard, and ordered range iteration over
// a cache stacked on its parent.
func RunConformance(t *testing.T, open StoreFactory) {
	t.Run("layers", func(t *testing.T) {
		base, release := open()
		defer release()
		checkLayers(t, base)
	})
	for name, sc := range rangeScenarios() {
		sc := sc
		t.Run("ranges/"+name, func(t *testing.T) {
			base, release := open()
			defer release()
			sc.run(t, base)
		})
	}
}

// AssertStored fails unless kv holds want under key. A nil want means the
// key must be absent.
func AssertStored(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func checkLayers(t *testing.T, base CacheableKVStore) {
	chal, vault, req := []byte("chal:open"), []byte("vault:init"), []byte("req:1")

	AssertStored(t, base, chal, nil)
	assert.Nil(t, base.Set(chal, []byte("created")))
	AssertStored(t, base, chal, []byte("created"))

	deliver := base.CacheWrap()
	AssertStored(t, deliver, chal, []byte("created"))
	assert.Nil(t, deliver.Set(vault, []byte("1000")))
	AssertStored(t, deliver, vault, []byte("1000"))
	AssertStored(t, base, vault, nil)
	assert.Nil(t, deliver.Write())
	AssertStored(t, base, vault, []byte("1000"))

	check := base.CacheWrap()
	assert.Nil(t, check.Set(req, []byte("pending")))
	assert.Nil(t, check.Delete(chal))
	check.Discard()
	AssertStored(t, base, req, nil)
	AssertStored(t, base, chal, []byte("created"))

	parent := base.CacheWrap()
	child := parent.CacheWrap()
	assert.Nil(t, child.Set(vault, []byte("37")))
	assert.Nil(t, child.Delete(chal))
	assert.Nil(t, child.Set(req, []byte("pending")))
	AssertStored(t, parent, vault, []byte("1000"))
	AssertStored(t, parent, chal, []byte("created"))

	assert.Nil(t, child.Write())
	AssertStored(t, parent, vault, []byte("37"))
	AssertStored(t, parent, chal, nil)
	AssertStored(t, parent, req, []byte("pending"))
	AssertStored(t, base, chal, []byte("created"))

	assert.Nil(t, parent.Write())
	AssertStored(t, base, chal, nil)
	AssertStored(t, base, vault, []byte("37"))
}

// write sets key to value, or deletes key when value is empty.
type write struct {
	key, value string
}

func (w write) apply(t testing.TB, db SetDeleter, view map[string][]byte) {
	t.Helper()
	if w.value == "" {
		assert.Nil(t, db.Delete([]byte(w.key)))
		delete(view, w.key)
		return
	}
	assert.Nil(t, db.Set([]byte(w.key), []byte(w.value)))
	view[w.key] = []byte(w.value)
}

// rangeScenario writes to a parent store, then to a cache on top of it,
// and iterates the cache. The expected content is kept in a plain map.
type rangeScenario struct {
	parent []write
	child  []write
}

func rangeScenarios() map[string]rangeScenario {
	vaults := func(from, to int, value string) []write {
		var ws []write
		for i := from; i < to; i++ {
			// scattered insert order
			n := from + (i-from)*7%(to-from)
			ws = append(ws, write{key: fmt.Sprintf("vault:%03d", n), value: fmt.Sprintf("%s-%d", value, n)})
		}
		return ws
	}
	drop := func(keys ...string) []write {
		ws := make([]write, len(keys))
		for i, k := range keys {
			ws[i] = write{key: k}
		}
		return ws
	}

	return map[string]rangeScenario{
		"child only": {
			child: append(vaults(0, 30, "c"), drop("vault:003", "vault:017", "vault:029")...),
		},
		"parent only": {
			parent: vaults(0, 30, "p"),
		},
		"child overrides and extends parent": {
			parent: append(vaults(0, 30, "p"), write{key: "chal:a", value: "open"}),
			child: append(append(vaults(10, 40, "c"),
				drop("vault:000", "vault:005", "vault:012", "vault:039")...),
				write{key: "chal:a", value: "matched"}),
		},
		"child deletes hide parent": {
			parent: []write{{"chal:a", "1"}, {"chal:c", "3"}, {"chal:d", "4"}},
			child:  drop("chal:a", "chal:b", "chal:d"),
		},
	}
}

func (sc rangeScenario) run(t *testing.T, base CacheableKVStore) {
	view := make(map[string][]byte)
	for _, w := range sc.parent {
		w.apply(t, base, view)
	}
	child := base.CacheWrap()
	for _, w := range sc.child {
		w.apply(t, child, view)
	}

	keys := make([]string, 0, len(view))
	for k := range view {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bounds := [][2][]byte{{nil, nil}}
	if n := len(keys); n > 0 {
		lo, hi := []byte(keys[n/4]), []byte(keys[3*n/4])
		bounds = append(bounds, [2][]byte{lo, nil}, [2][]byte{nil, hi}, [2][]byte{nil, []byte(keys[0])})
		if n/4 < 3*n/4 {
			bounds = append(bounds, [2][]byte{lo, hi})
		}
	}
	for _, b := range bounds {
		for _, reverse := range []bool{false, true} {
			expectRange(t, child, view, keys, b[0], b[1], reverse)
		}
	}
}

// expectRange iterates [start, end) of db and compares it with the sorted
// keys of view falling in that range.
func expectRange(t *testing.T, db ReadOnlyKVStore, view map[string][]byte, keys []string, start, end []byte, reverse bool) {
	t.Helper()

	var want []string
	for _, k := range keys {
		if start != nil && bytes.Compare([]byte(k), start) < 0 {
			continue
		}
		if end != nil && bytes.Compare([]byte(k), end) >= 0 {
			continue
		}
		want = append(want, k)
	}

	var (
		it  Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
		for i, j := 0, len(want)-1; i < j; i, j = i+1, j-1 {
			want[i], want[j] = want[j], want[i]
		}
	} else {
		it, err = db.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	for i, k := range want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if string(key) != k {
			t.Fatalf("range [%q, %q) reverse=%v: item %d is %q, want %q", start, end, reverse, i, key, k)
		}
		assert.Equal(t, view[k], value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("range [%q, %q) reverse=%v: want end of iteration, got %+v", start, end, reverse, err)
	}
}
