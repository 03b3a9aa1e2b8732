package mutatorset

import (
	"encoding/binary"

	"mutaset.dev/core/digest"
)

// AbsoluteIndexSet is the NUM_TRIALS Bloom-filter positions an addition
// occupies, derived once at commitment time and carried unchanged by
// every membership proof and removal record built from it.
type AbsoluteIndexSet [NumTrials]uint64

// deriveIndices computes an item's absolute index set. The modulus is
// tied to the AOCL leaf index the item will occupy: it is the window
// frontier (offset+WindowSize) as it stands once leaf leafIndex has been
// added, offset being ChunkSize*((leafIndex+1)/ChunkSize) since eviction
// is driven solely by the AOCL leaf count. Every derived index therefore
// lands strictly before the current frontier the moment the item is
// added, and it keeps that property forever after since the offset only
// grows and the set is never recomputed.
func deriveIndices(item, senderRandomness, receiverDigest digest.Digest, leafIndex uint64) AbsoluteIndexSet {
	modulus := ChunkSize*((leafIndex+1)/ChunkSize) + WindowSize

	var out AbsoluteIndexSet
	buf := make([]byte, 0, 3*digest.Width*8+16)
	buf = append(buf, item.Encode()...)
	buf = append(buf, senderRandomness.Encode()...)
	buf = append(buf, receiverDigest.Encode()...)
	buf = binary.LittleEndian.AppendUint64(buf, leafIndex)
	trialPos := len(buf)
	buf = binary.LittleEndian.AppendUint64(buf, 0)

	for trial := range out {
		binary.LittleEndian.PutUint64(buf[trialPos:], uint64(trial))
		h := digest.HashVarlen(buf)
		out[trial] = (h[0] ^ h[1]<<7 ^ h[2]<<13 ^ h[3]<<19 ^ h[4]<<29) % modulus
	}
	return out
}

// chunkIndices returns the distinct chunk indices touched by those
// entries of idx that lie below offset (the absolute index of the active
// window's first bit) — indices in the live active window need no chunk
// witness.
func (idx AbsoluteIndexSet) chunkIndices(offset uint64) map[uint64]struct{} {
	out := map[uint64]struct{}{}
	for _, i := range idx {
		if i < offset {
			out[i/ChunkSize] = struct{}{}
		}
	}
	return out
}
