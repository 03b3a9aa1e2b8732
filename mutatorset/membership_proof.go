package mutatorset

import (
	"mutaset.dev/core/digest"
	"mutaset.dev/core/mmr"
)

// MembershipProof is the witness that an item was added to the
// accumulator: an AOCL authentication path, the blinding data needed to
// recompute the item's canonical commitment, and — for every absolute
// index that currently lands in an evicted chunk — a chunk witness
// proving that chunk's content. It goes stale as the accumulator
// evolves and must be refreshed via UpdateFromAddition / UpdateFromRemove.
type MembershipProof struct {
	AOCLLeafIndex    uint64
	AOCLPath         mmr.AuthenticationPath
	SenderRandomness digest.Digest
	ReceiverDigest   digest.Digest
	AbsoluteIndices  AbsoluteIndexSet
	TargetChunks     map[uint64]ChunkWitness
}

func (mp MembershipProof) clone() MembershipProof {
	out := MembershipProof{
		AOCLLeafIndex:    mp.AOCLLeafIndex,
		AOCLPath:         mp.AOCLPath,
		SenderRandomness: mp.SenderRandomness,
		ReceiverDigest:   mp.ReceiverDigest,
		AbsoluteIndices:  mp.AbsoluteIndices,
		TargetChunks:     make(map[uint64]ChunkWitness, len(mp.TargetChunks)),
	}
	for k, w := range mp.TargetChunks {
		out.TargetChunks[k] = w.clone()
	}
	return out
}

// toRemovalRecord builds the RemovalRecord this proof would produce if
// the item were dropped right now — Drop is pure and returns exactly
// this, unmodified.
func (mp MembershipProof) toRemovalRecord() RemovalRecord {
	return RemovalRecord{AbsoluteIndices: mp.AbsoluteIndices, TargetChunks: mp.TargetChunks}
}

// UpdateFromAddition refreshes mp's AOCL path and any chunk witnesses
// newly required by eviction, after record was applied to msaAfter, the
// accumulator as it stands once the addition has gone through. It
// returns whether anything changed. Every concurrently held proof must
// be run through this on every addition or it silently goes stale.
func (mp *MembershipProof) UpdateFromAddition(msaAfter *Accumulator, record AdditionRecord) (bool, error) {
	path, err := msaAfter.aocl.Prove(mp.AOCLLeafIndex)
	if err != nil {
		return false, err
	}
	changed := !authPathsEqual(mp.AOCLPath, path)
	mp.AOCLPath = path

	for chunkIndex := range mp.AbsoluteIndices.chunkIndices(msaAfter.swbf.offset) {
		if _, have := mp.TargetChunks[chunkIndex]; have {
			continue
		}
		w := msaAfter.witnessForEvictedChunk(chunkIndex)
		if w.Bits == nil {
			continue
		}
		mp.TargetChunks[chunkIndex] = w
		changed = true
	}
	return changed, nil
}

// UpdateFromRemove refreshes mp's chunk witnesses after removal has
// caused a bit inside one of mp's own target chunks to flip, or caused
// the window to slide past a chunk mp references for the first time.
// Bit-flip state never affects mp's own validity unless it coincides
// with mp's own index set (handled by the accumulator's Verify, not
// here); this only keeps the witnesses themselves authenticating.
func (mp *MembershipProof) UpdateFromRemove(msa *Accumulator, applied RemovalRecord) bool {
	changed := false
	for chunkIndex := range mp.TargetChunks {
		if w, ok := applied.TargetChunks[chunkIndex]; ok {
			mp.TargetChunks[chunkIndex] = w.clone()
			changed = true
		}
	}
	newlyEvicted := mp.AbsoluteIndices.chunkIndices(msa.swbf.offset)
	for chunkIndex := range newlyEvicted {
		if _, have := mp.TargetChunks[chunkIndex]; have {
			continue
		}
		if w, ok := applied.TargetChunks[chunkIndex]; ok {
			mp.TargetChunks[chunkIndex] = w.clone()
			changed = true
		}
	}
	return changed
}

func authPathsEqual(a, b mmr.AuthenticationPath) bool {
	if len(a.Siblings) != len(b.Siblings) {
		return false
	}
	for i := range a.Siblings {
		if a.Siblings[i] != b.Siblings[i] {
			return false
		}
	}
	return true
}
