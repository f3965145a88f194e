package store

// Store is a bucketed key-value engine. Every mutating call commits in its own
// transaction: a caller never observes a partial write, and there is no
// transaction spanning two calls.
//
// The bbolt implementation is the only one shipped; tests use an in-memory map.
type Store interface {
	Get(bucket, key []byte) ([]byte, error)
	Has(bucket, key []byte) (bool, error)
	Set(bucket, key, value []byte) error
	Delete(bucket, key []byte) error
	// Clear removes every key in bucket atomically.
	Clear(bucket []byte) error
	ForEach(bucket []byte, fn func(key, value []byte) error) error
	Close() error
}
