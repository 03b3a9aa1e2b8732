// Package mutatorset implements the mutator-set accumulator (MSA): the
// cryptographic commitment to the spendable-output set that takes the
// place of a UTXO table. It composes an append-only commitment log
// (package mmr, used as an archival Accumulator) with a sliding-window
// Bloom filter that tracks which commitments have been spent.
package mutatorset

import (
	"mutaset.dev/core/digest"
	"mutaset.dev/core/mmr"
)

// Accumulator is the mutator set: (AOCL, SWBF). The zero value has no
// SWBF and is not usable; New returns the empty accumulator over an
// empty output set.
type Accumulator struct {
	aocl mmr.Accumulator
	swbf *swbf
}

// New returns an empty mutator-set accumulator.
func New() *Accumulator {
	return &Accumulator{swbf: newSWBF()}
}

// Clone returns a deep copy, used by validation to simulate applying an
// update without mutating the caller's real tip (§5: "validators operate
// on copies of the MSA when simulating apply_to_accumulator").
func (a *Accumulator) Clone() *Accumulator {
	return &Accumulator{aocl: a.aocl.Clone(), swbf: a.swbf.clone()}
}

// Hash is the MSA's commitment: the pairwise hash of the AOCL's bagged
// peaks with the SWBF's own hash (§3).
func (a *Accumulator) Hash() digest.Digest {
	return digest.HashPair(a.aocl.BagPeaks(), a.swbf.hash())
}

// NumAdditions returns how many items have ever been added.
func (a *Accumulator) NumAdditions() uint64 { return a.aocl.NumLeafs() }

// Add appends record's commitment to the AOCL and, if that crossed a
// chunk boundary, evicts one chunk from the SWBF's active window. Every
// proof in preservedProofs is refreshed via UpdateFromAddition against
// the resulting accumulator, mirroring how BatchRemove refreshes
// preservedProofs on removal (§4.4: every concurrently held proof must
// be run through this on every addition or it silently goes stale).
func (a *Accumulator) Add(record AdditionRecord, preservedProofs ...*MembershipProof) uint64 {
	leafIndex := a.aocl.Append(record.CanonicalCommitment)
	a.swbf.maybeEvict(a.aocl.NumLeafs())
	for _, mp := range preservedProofs {
		_, _ = mp.UpdateFromAddition(a, record)
	}
	return leafIndex
}

// Prove builds the membership proof for an item committed via
// Commit(item, senderRandomness, receiverDigest) and already Add-ed to
// this accumulator at leafIndex.
func (a *Accumulator) Prove(item, senderRandomness, receiverDigest digest.Digest, leafIndex uint64) (MembershipProof, error) {
	path, err := a.aocl.Prove(leafIndex)
	if err != nil {
		return MembershipProof{}, mserr(MS_ERR_LEAF_INDEX_RANGE, err.Error())
	}
	indices := deriveIndices(item, senderRandomness, receiverDigest, leafIndex)
	targets := a.chunkWitnessesFor(indices)
	return MembershipProof{
		AOCLLeafIndex:    leafIndex,
		AOCLPath:         path,
		SenderRandomness: senderRandomness,
		ReceiverDigest:   receiverDigest,
		AbsoluteIndices:  indices,
		TargetChunks:     targets,
	}, nil
}

func (a *Accumulator) chunkWitnessesFor(indices AbsoluteIndexSet) map[uint64]ChunkWitness {
	out := map[uint64]ChunkWitness{}
	for chunkIndex := range indices.chunkIndices(a.swbf.offset) {
		out[chunkIndex] = a.witnessForEvictedChunk(chunkIndex)
	}
	return out
}

// witnessForEvictedChunk is only reachable for chunk indices this
// process itself evicted in the current run (tests build witnesses this
// way); a node recovering chunk content for older history would source
// it from the archival collaborator instead.
func (a *Accumulator) witnessForEvictedChunk(chunkIndex uint64) ChunkWitness {
	bits, path, ok := a.swbf.debugChunkWitness(chunkIndex)
	if !ok {
		return ChunkWitness{}
	}
	return ChunkWitness{Bits: bits, Path: path}
}

// Verify reports whether proof authenticates item's continued
// membership: the AOCL path checks out against the current peaks, and
// at least one of the proof's absolute indices currently reads zero.
func (a *Accumulator) Verify(item digest.Digest, proof MembershipProof) bool {
	commitment := digest.Commit(item, proof.SenderRandomness, proof.ReceiverDigest)
	if !mmr.Verify(proof.AOCLLeafIndex, commitment, proof.AOCLPath, a.aocl.Peaks(), a.aocl.NumLeafs()) {
		return false
	}
	canRemove, err := a.swbf.canRemove(proof.AbsoluteIndices, proof.TargetChunks)
	return err == nil && canRemove
}

// CanRemove reports whether record's absolute-index set currently has
// at least one unset bit, i.e. whether the item it targets has not
// already been marked spent (§4.8 rule 1.a).
func (a *Accumulator) CanRemove(record RemovalRecord) (bool, error) {
	return a.swbf.canRemove(record.AbsoluteIndices, record.TargetChunks)
}

// Drop is the pure counterpart of Remove: it returns the RemovalRecord
// that would be applied, without mutating the accumulator.
func (a *Accumulator) Drop(proof MembershipProof) RemovalRecord {
	return proof.toRemovalRecord()
}

// Remove flips every bit in record's absolute-index set. It never
// evicts a chunk: eviction happens only in Add, driven by the AOCL's
// leaf count.
func (a *Accumulator) Remove(record RemovalRecord) error {
	return a.swbf.setBits(record.AbsoluteIndices, record.TargetChunks)
}

// BatchRemove applies records as if sequentially, updating any
// preservedProofs that reference chunks records touch. It is idempotent
// under duplicate records: flipping an already-set bit is a no-op.
func (a *Accumulator) BatchRemove(records []RemovalRecord, preservedProofs []*MembershipProof) error {
	for _, r := range records {
		if err := a.Remove(r); err != nil {
			return err
		}
		for _, mp := range preservedProofs {
			mp.UpdateFromRemove(a, r)
		}
	}
	return nil
}
