package port

// CacheStore is durable local key-value persistence for entity collections
// and settings. Save marshals value; Load unmarshals the stored bytes into
// out and leaves out untouched (returning false) when the key is absent or
// the stored data does not parse. Load never fails on corrupted data — it is
// discarded and the caller's default wins.
type CacheStore interface {
	Save(key string, value any) error
	Load(key string, out any) bool
	Delete(key string) error
	Reset() error
	Close() error
}
