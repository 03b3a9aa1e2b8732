// Package store defines the narrow persisted-state interface consensus
// consumes (§6) and a go.etcd.io/bbolt-backed implementation of it,
// adapted from the teacher's node/store/db.go bucket-per-entity layout.
// Nothing in this package is consensus-critical: Validate never calls
// into it, and a caller is free to swap in an in-memory or a different
// on-disk implementation without affecting block acceptance.
package store

// KV is the key-value contract persisted state must satisfy (§6):
// typed keys, length-delimited binary values, get/put/delete plus
// atomic batched writes at "one accepted block" granularity.
type KV interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key, value []byte) error
	Delete(key []byte) ([]byte, bool, error)
	Batch(func(Batch) error) error
}

// Batch is the subset of KV usable inside a Batch callback: the same
// reads and writes, scoped to one atomic transaction.
type Batch interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key, value []byte) error
	Delete(key []byte) ([]byte, bool, error)
}
