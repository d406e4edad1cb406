package store

// Recorder is implemented by stores that keep track of all modified keys.
type Recorder interface {
	// KVPairs maps every modified key to its new value. Deleted keys map to
	// nil.
	KVPairs() map[string][]byte
}

// RecordingStore wraps a store and records every write that reaches it,
// including writes flushed from cache wraps created on top of it.
type RecordingStore struct {
	KVStore
	changes map[string][]byte
}

var (
	_ CacheableKVStore = (*RecordingStore)(nil)
	_ Recorder         = (*RecordingStore)(nil)
)

// NewRecordingStore returns a recording store writing through to db.
func NewRecordingStore(db KVStore) *RecordingStore {
	return &RecordingStore{
		KVStore: db,
		changes: make(map[string][]byte),
	}
}

func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

func (r *RecordingStore) Set(key, value []byte) error {
	if err := r.KVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

func (r *RecordingStore) Delete(key []byte) error {
	if err := r.KVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch returns a batch that applies its operations through the
// recorder.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
