package chainstate

import (
	"sync/atomic"

	"mutaset.dev/core/digest"
	"mutaset.dev/core/mast"
)

// MAST field discriminants for the block's own (header, body) kernel.
const (
	BlockFieldHeader int = iota
	BlockFieldBody
)

// Block is the composition of a header, a body, and an opaque proof
// blob, plus a lazily computed, non-persisted digest cache (§9). Fields
// are unexported so that every mutation goes through a method that
// invalidates the cache — the "opaque handle, read-only projection"
// pattern §9 calls for in languages without field-level visibility
// enforcement.
type Block struct {
	header BlockHeader
	body   BlockBody
	proof  []byte

	digest atomic.Pointer[digest.Digest]
}

// NewBlock builds a Block from its constituent parts. The digest cache
// starts empty and is computed on first Digest() call.
func NewBlock(header BlockHeader, body BlockBody, proof []byte) *Block {
	return &Block{header: header, body: body, proof: proof}
}

// Header returns a shallow copy of the header: its plain fields are
// copied, but CumulativeProofOfWork and Difficulty still point at the
// block's own big.Int values.
func (b *Block) Header() BlockHeader { return b.header }

// Body returns the block's body.
func (b *Block) Body() BlockBody { return b.body }

// Proof returns the block's opaque proof blob.
func (b *Block) Proof() []byte { return b.proof }

// MastFields implements mast.Hashable: the block's kernel is
// (header, body), so its two leaves are the header's plain encoding and
// the body's own MAST hash.
func (b *Block) MastFields() [][]byte {
	return [][]byte{
		b.header.Encode(),
		b.body.MastHash().Encode(),
	}
}

// Digest returns the block's digest, computing and memoising it on
// first call via a compare-and-swap over a boxed pointer — the single
// piece of interior mutability in the core (§5, §9). Concurrent callers
// that race here compute the same deterministic value, so the race is
// benign; only the slot itself must be written at most once.
func (b *Block) Digest() digest.Digest {
	if cached := b.digest.Load(); cached != nil {
		return *cached
	}
	computed := mast.Hash(b)
	b.digest.CompareAndSwap(nil, &computed)
	return *b.digest.Load()
}

// Equal compares two blocks by digest only (§3: "Equality between
// blocks compares digests only").
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Digest() == other.Digest()
}

// WithHeader returns a new Block with header replaced by next, leaving
// b untouched. This is the only way to "mutate" a header: the digest
// cache of the new Block starts empty, so it is never stale.
func (b *Block) WithHeader(next BlockHeader) *Block {
	return NewBlock(next, b.body, b.proof)
}

// WithBody returns a new Block with body replaced by next, leaving b
// untouched, for the same reason as WithHeader.
func (b *Block) WithBody(next BlockBody) *Block {
	return NewBlock(b.header, next, b.proof)
}
