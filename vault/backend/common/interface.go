package common

// KVStore is the storage contract every vault backend fulfils.
type KVStore interface {
	// Get returns nil, nil if key does not exist. The returned slice is owned by the caller.
	Get(key []byte) ([]byte, error)

	Has(key []byte) (bool, error)

	// Set replaces the value of key in one write.
	Set(key []byte, value []byte) error

	// Delete is a no-op if key does not exist.
	Delete(key []byte) error

	Close() error
}
