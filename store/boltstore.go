package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"mutaset.dev/core/chainstate"
	"mutaset.dev/core/digest"
)

// BoltKV is a go.etcd.io/bbolt-backed KV, adapted from the teacher's
// node/store/db.go: one bucket per entity, keys re-keyed on canonical
// Digest encodings instead of the teacher's [32]byte SHA3 hashes.
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) a bbolt database at path and
// ensures every bucket this package uses exists.
func OpenBolt(path string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: mkdir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}
	buckets := [][]byte{bucketBlocksByDigest, bucketHeadersByDigest, bucketMSACheckpoints, bucketBlockIndexByDigest}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltKV{db: db}, nil
}

func (s *BoltKV) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// defaultBucket is used by the generic KV methods when the caller has
// not gone through one of the typed helpers below.
var defaultBucket = bucketBlocksByDigest

func (s *BoltKV) Get(key []byte) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(defaultBucket).Get(key)
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || out == nil {
		return nil, false, err
	}
	return out, true, nil
}

func (s *BoltKV) Put(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(defaultBucket).Put(key, value)
	})
}

func (s *BoltKV) Delete(key []byte) ([]byte, bool, error) {
	prev, ok, err := s.Get(key)
	if err != nil || !ok {
		return prev, ok, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(defaultBucket).Delete(key)
	})
	return prev, true, err
}

// boltBatch adapts a single bolt.Tx to the Batch interface so the whole
// callback runs as one atomic transaction (§6: "atomic batched writes at
// the granularity of one accepted block").
type boltBatch struct {
	tx *bolt.Tx
}

func (b boltBatch) Get(key []byte) ([]byte, bool, error) {
	v := b.tx.Bucket(defaultBucket).Get(key)
	if v == nil {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b boltBatch) Put(key, value []byte) error {
	return b.tx.Bucket(defaultBucket).Put(key, value)
}

func (b boltBatch) Delete(key []byte) ([]byte, bool, error) {
	v, ok, err := b.Get(key)
	if err != nil || !ok {
		return v, ok, err
	}
	return v, true, b.tx.Bucket(defaultBucket).Delete(key)
}

func (s *BoltKV) Batch(fn func(Batch) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(boltBatch{tx: tx})
	})
}

// --- typed helpers over the per-entity buckets ---

// PutBlock persists block's canonical wire encoding keyed by its digest.
func (s *BoltKV) PutBlock(b *chainstate.Block) error {
	key := digestKey(b.Digest())
	val := chainstate.EncodeBlock(b)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBlocksByDigest).Put(key, val)
	})
}

// GetBlock looks up a block by digest and decodes it.
func (s *BoltKV) GetBlock(d digest.Digest) (*chainstate.Block, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlocksByDigest).Get(digestKey(d))
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false, err
	}
	b, err := chainstate.DecodeBlock(raw)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// PutHeader persists a header's canonical encoding keyed by its block's
// digest, for header-only sync.
func (s *BoltKV) PutHeader(d digest.Digest, header chainstate.BlockHeader) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeadersByDigest).Put(digestKey(d), header.Encode())
	})
}

// PutMSACheckpoint persists a mutator-set accumulator snapshot keyed by
// the digest of the block whose post-state it is, so a node can resume
// from a recent block without replaying from genesis.
func (s *BoltKV) PutMSACheckpoint(d digest.Digest, encoded []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMSACheckpoints).Put(digestKey(d), encoded)
	})
}

// GetMSACheckpoint retrieves a previously stored accumulator snapshot.
func (s *BoltKV) GetMSACheckpoint(d digest.Digest) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMSACheckpoints).Get(digestKey(d))
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || out == nil {
		return nil, false, err
	}
	return out, true, nil
}
