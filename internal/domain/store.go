package domain

// KVStore is a flat key-value store holding encoded documents.
// Get returns ErrKeyNotFound when the key has never been written.
type KVStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}
