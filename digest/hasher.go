package digest

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Domain-separation tags, mirroring the teacher's leaf/node-prefix
// convention in consensus/merkle.go (there: 0x00 leaf / 0x01 inner node
// for the transaction Merkle root). Here the separation is between
// variable-length absorption and fixed-width pair compression, so two
// Digests built from swapped inputs of different shapes never collide.
const (
	tagVarlen byte = 0x00
	tagPair   byte = 0x01
)

// HashVarlen absorbs an arbitrary-length byte string (the canonical
// encoding of some domain value, per §6) and produces a Digest by
// expanding a SHA3-256 sponge over five counter-tagged lanes, each folded
// into the field. This is the "hasher" half of the digest & hasher
// component: every MAST leaf and every AOCL/SWBF-chunk commitment in the
// repository is computed by a call to HashVarlen.
func HashVarlen(data []byte) Digest {
	var out Digest
	for lane := 0; lane < Width; lane++ {
		h := sha3.New256()
		h.Write([]byte{tagVarlen, byte(lane)})
		h.Write(data)
		sum := h.Sum(nil)
		out[lane] = reduce(binary.LittleEndian.Uint64(sum[:8]))
	}
	return out
}

// HashPair compresses two digests into one. It is the node-hashing
// primitive for both MAST trees (mast.Hash) and Merkle mountain
// ranges (mmr.Accumulator), exactly as the teacher's merkleRootTagged
// compresses two 32-byte ids with a single tagged SHA3-256 call — the
// only difference is the leaf width (5 field-element limbs instead of
// one SHA3-256 digest) and that we fold the sponge output back into the
// field rather than returning raw bytes.
func HashPair(a, b Digest) Digest {
	var out Digest
	aEnc, bEnc := a.Encode(), b.Encode()
	for lane := 0; lane < Width; lane++ {
		h := sha3.New256()
		h.Write([]byte{tagPair, byte(lane)})
		h.Write(aEnc)
		h.Write(bEnc)
		sum := h.Sum(nil)
		out[lane] = reduce(binary.LittleEndian.Uint64(sum[:8]))
	}
	return out
}

// Commit computes a blinded commitment to a UTXO-like item: the addition
// record's canonical_commitment (§4.4). It is a thin, named wrapper over
// HashVarlen so call sites read like the spec's commit(item, randomness,
// receiver) rather than a raw byte-concatenation hash.
func Commit(item, senderRandomness, receiverDigest Digest) Digest {
	buf := make([]byte, 0, 3*Width*8)
	buf = append(buf, item.Encode()...)
	buf = append(buf, senderRandomness.Encode()...)
	buf = append(buf, receiverDigest.Encode()...)
	return HashVarlen(buf)
}
