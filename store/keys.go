package store

import "mutaset.dev/core/digest"

// Bucket names, one per entity, following the teacher's
// bucket-per-entity layout in node/store/db.go.
var (
	bucketBlocksByDigest     = []byte("blocks_by_digest")
	bucketHeadersByDigest    = []byte("headers_by_digest")
	bucketMSACheckpoints     = []byte("msa_checkpoints_by_digest")
	bucketBlockIndexByDigest = []byte("block_index_by_digest")
)

func digestKey(d digest.Digest) []byte {
	return d.Encode()
}
