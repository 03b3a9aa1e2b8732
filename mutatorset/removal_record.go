package mutatorset

// RemovalRecord is the spend witness for an item: its absolute index
// set plus a chunk witness for every index that currently falls in an
// already-evicted chunk. Indices still inside the active window carry
// no witness — the live bit is read directly.
type RemovalRecord struct {
	AbsoluteIndices AbsoluteIndexSet
	TargetChunks    map[uint64]ChunkWitness // keyed by chunk index
}

func (r RemovalRecord) clone() RemovalRecord {
	out := RemovalRecord{AbsoluteIndices: r.AbsoluteIndices, TargetChunks: make(map[uint64]ChunkWitness, len(r.TargetChunks))}
	for k, w := range r.TargetChunks {
		out.TargetChunks[k] = w.clone()
	}
	return out
}

// sameIndices reports whether two removal records target the exact same
// absolute index set — the duplicate-removal check in §4.8 rule 1.b /
// §7's DuplicateRemoval.
func (r RemovalRecord) sameIndices(other RemovalRecord) bool {
	return r.AbsoluteIndices == other.AbsoluteIndices
}
