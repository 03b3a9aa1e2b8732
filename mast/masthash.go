// Package mast computes Merkle Abstract Syntax Tree (MAST) roots over a
// structured type's enumerated fields, giving every MAST-hashable type
// (transaction kernel, block body, block) per-field domain
// separation the same way the teacher's consensus/merkle.go gives
// transactions per-leaf domain separation, generalized from "one leaf per
// transaction" to "one leaf per struct field".
package mast

import "mutaset.dev/core/digest"

// Hashable is the capability a MAST-hashable type implements: it returns
// its fields as canonically-encoded byte sequences, in the type's fixed,
// stable field order (§4.1 — "reordering fields is a hard fork", so this
// order must never change for a released type; it may only grow by
// appending, never by inserting or deleting).
type Hashable interface {
	MastFields() [][]byte
}

// Hash computes the MAST root: the Merkle root of leaf_i =
// HashVarlen(encoded_field_i), zero-padded to the next power of two with
// digest.Zero leaves.
func Hash(h Hashable) digest.Digest {
	fields := h.MastFields()
	leafCount := nextPowerOfTwo(len(fields))

	leaves := make([]digest.Digest, leafCount)
	for i, f := range fields {
		leaves[i] = digest.HashVarlen(f)
	}
	for i := len(fields); i < leafCount; i++ {
		leaves[i] = digest.Zero
	}

	return merkleRoot(leaves)
}

// merkleRoot folds a power-of-two-sized leaf slice up to a single root by
// repeated pairwise hashing, the same shape as the teacher's
// merkleRootTagged loop in consensus/merkle.go.
func merkleRoot(level []digest.Digest) digest.Digest {
	if len(level) == 0 {
		return digest.Zero
	}
	for len(level) > 1 {
		next := make([]digest.Digest, len(level)/2)
		for i := range next {
			next[i] = digest.HashPair(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
