package mutatorset

import "testing"

func allIndices(v uint64) AbsoluteIndexSet {
	var out AbsoluteIndexSet
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSetBitAndCanRemoveInActiveWindow(t *testing.T) {
	s := newSWBF()
	indices := allIndices(5)
	canRemove, err := s.canRemove(indices, nil)
	if err != nil || !canRemove {
		t.Fatalf("unset bit should be removable, got canRemove=%v err=%v", canRemove, err)
	}
	if err := s.setBits(indices, nil); err != nil {
		t.Fatalf("setBits: %v", err)
	}
	canRemove, err = s.canRemove(indices, nil)
	if err != nil || canRemove {
		t.Fatalf("set bit should not be removable again, got canRemove=%v err=%v", canRemove, err)
	}
}

func TestEvictionMovesBitsToInactiveAndPreservesThem(t *testing.T) {
	s := newSWBF()
	// Flip one bit within what will become the first evicted chunk.
	idx := allIndices(10)
	if err := s.setBits(idx, nil); err != nil {
		t.Fatalf("setBits: %v", err)
	}

	// Advance the AOCL leaf count past one chunk boundary.
	s.maybeEvict(ChunkSize)

	if s.offset != ChunkSize {
		t.Fatalf("expected window offset to advance by one chunk, got %d", s.offset)
	}
	if s.inactive.NumLeafs() != 1 {
		t.Fatalf("expected exactly one evicted chunk, got %d", s.inactive.NumLeafs())
	}

	bits, path, ok := s.debugChunkWitness(0)
	if !ok {
		t.Fatalf("expected a witness for the evicted chunk")
	}
	witnesses := map[uint64]ChunkWitness{0: {Bits: bits, Path: path}}

	canRemove, err := s.canRemove(idx, witnesses)
	if err != nil {
		t.Fatalf("canRemove: %v", err)
	}
	if canRemove {
		t.Fatalf("previously set bit should still read 1 after eviction into the inactive chunk")
	}
}

func TestRemoveInsideEvictedChunkUpdatesInactivePeak(t *testing.T) {
	s := newSWBF()
	s.maybeEvict(ChunkSize) // evict an all-zero chunk
	if s.inactive.NumLeafs() != 1 {
		t.Fatalf("expected one evicted chunk")
	}

	peakBefore := s.inactive.BagPeaks()

	bits, path, ok := s.debugChunkWitness(0)
	if !ok {
		t.Fatalf("expected a witness for the evicted chunk")
	}
	indices := allIndices(3) // falls inside chunk 0 (absolute index 3 < ChunkSize)
	witnesses := map[uint64]ChunkWitness{0: {Bits: bits, Path: path}}

	if err := s.setBits(indices, witnesses); err != nil {
		t.Fatalf("setBits into evicted chunk: %v", err)
	}
	if s.inactive.BagPeaks() == peakBefore {
		t.Fatalf("flipping a bit inside an evicted chunk should change the inactive MMR's bagged peak")
	}

	bits2, path2, ok := s.debugChunkWitness(0)
	if !ok {
		t.Fatalf("expected a witness for the evicted chunk after update")
	}
	canRemove, err := s.canRemove(indices, map[uint64]ChunkWitness{0: {Bits: bits2, Path: path2}})
	if err != nil {
		t.Fatalf("canRemove: %v", err)
	}
	if canRemove {
		t.Fatalf("bit flipped inside evicted chunk should now read 1")
	}
}

func TestOutOfWindowIndexRejected(t *testing.T) {
	s := newSWBF()
	future := allIndices(WindowSize + 1000)
	if _, err := s.canRemove(future, nil); err == nil {
		t.Fatalf("expected an error for an index beyond the current window frontier")
	}
}
