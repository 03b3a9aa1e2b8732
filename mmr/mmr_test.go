package mmr

import (
	"testing"

	"mutaset.dev/core/digest"
)

func leafAt(i int) digest.Digest {
	return digest.HashVarlen([]byte{byte(i), byte(i >> 8)})
}

func TestEmptyAccumulatorBagsToZero(t *testing.T) {
	var a Accumulator
	if a.BagPeaks() != digest.Zero {
		t.Fatalf("empty MMR should bag to the zero digest")
	}
	if a.NumLeafs() != 0 {
		t.Fatalf("expected 0 leaves")
	}
}

func TestAppendAssignsSequentialIndices(t *testing.T) {
	var a Accumulator
	for i := 0; i < 17; i++ {
		idx := a.Append(leafAt(i))
		if idx != uint64(i) {
			t.Fatalf("leaf %d: got index %d", i, idx)
		}
	}
	if a.NumLeafs() != 17 {
		t.Fatalf("expected 17 leaves, got %d", a.NumLeafs())
	}
}

func TestBagPeaksDeterministicAndOrderSensitive(t *testing.T) {
	var a, b Accumulator
	for i := 0; i < 11; i++ {
		a.Append(leafAt(i))
	}
	for i := 10; i >= 0; i-- {
		b.Append(leafAt(i))
	}
	if a.BagPeaks() != a.BagPeaks() {
		t.Fatalf("BagPeaks not deterministic")
	}
	if a.BagPeaks() == b.BagPeaks() {
		t.Fatalf("bagging should depend on append order")
	}
}

func TestProveVerifyRoundTrip(t *testing.T) {
	var a Accumulator
	const n = 37
	leaves := make([]digest.Digest, n)
	for i := 0; i < n; i++ {
		leaves[i] = leafAt(i)
		a.Append(leaves[i])
	}
	peaks := a.Peaks()
	numLeafs := a.NumLeafs()

	for i := 0; i < n; i++ {
		path, err := a.Prove(uint64(i))
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		if !Verify(uint64(i), leaves[i], path, peaks, numLeafs) {
			t.Fatalf("Verify failed for leaf %d", i)
		}
	}
}

func TestVerifyRejectsWrongLeaf(t *testing.T) {
	var a Accumulator
	const n = 9
	leaves := make([]digest.Digest, n)
	for i := 0; i < n; i++ {
		leaves[i] = leafAt(i)
		a.Append(leaves[i])
	}
	path, err := a.Prove(3)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if Verify(3, leaves[4], path, a.Peaks(), a.NumLeafs()) {
		t.Fatalf("Verify accepted a mismatched leaf")
	}
}

func TestVerifyRejectsTamperedSibling(t *testing.T) {
	var a Accumulator
	const n = 13
	leaves := make([]digest.Digest, n)
	for i := 0; i < n; i++ {
		leaves[i] = leafAt(i)
		a.Append(leaves[i])
	}
	path, err := a.Prove(5)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(path.Siblings) == 0 {
		t.Fatalf("expected a non-trivial path")
	}
	path.Siblings[0] = digest.HashVarlen([]byte("tamper"))
	if Verify(5, leaves[5], path, a.Peaks(), a.NumLeafs()) {
		t.Fatalf("Verify accepted a tampered authentication path")
	}
}

func TestProveOutOfRange(t *testing.T) {
	var a Accumulator
	a.Append(leafAt(0))
	if _, err := a.Prove(5); err == nil {
		t.Fatalf("expected error for out-of-range leaf index")
	}
}

func TestLightMatchesAccumulatorPeaks(t *testing.T) {
	var a Accumulator
	var l Light
	for i := 0; i < 23; i++ {
		leaf := leafAt(i)
		a.Append(leaf)
		l.Append(leaf)
	}
	if a.BagPeaks() != l.BagPeaks() {
		t.Fatalf("Light and Accumulator diverged on bagged peaks")
	}
	if a.NumLeafs() != l.NumLeafs() {
		t.Fatalf("Light and Accumulator diverged on leaf count")
	}
}

func TestLightApplyUpdateChangesOnlyItsMountain(t *testing.T) {
	var a Accumulator
	var l Light
	const n = 13
	for i := 0; i < n; i++ {
		leaf := leafAt(i)
		a.Append(leaf)
		l.Append(leaf)
	}

	target := uint64(2)
	path, err := a.Prove(target)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	otherPath, err := a.Prove(9)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	otherLeaf := leafAt(9)

	updated := digest.HashVarlen([]byte("updated-leaf"))
	if err := l.ApplyUpdate(target, updated, path); err != nil {
		t.Fatalf("ApplyUpdate: %v", err)
	}

	if !Verify(target, updated, path, l.Peaks(), l.NumLeafs()) {
		t.Fatalf("updated leaf should verify against the new peaks")
	}
	if Verify(target, leafAt(int(target)), path, l.Peaks(), l.NumLeafs()) {
		t.Fatalf("old leaf value should no longer verify")
	}
	if !Verify(9, otherLeaf, otherPath, l.Peaks(), l.NumLeafs()) {
		t.Fatalf("updating one leaf should not disturb an unrelated mountain's leaves")
	}
}

func TestVerifyRejectsOutOfRangeLeaf(t *testing.T) {
	var a Accumulator
	for i := 0; i < 4; i++ {
		a.Append(leafAt(i))
	}
	path, _ := a.Prove(0)
	if Verify(99, leafAt(0), path, a.Peaks(), a.NumLeafs()) {
		t.Fatalf("Verify should reject leaf indices beyond numLeafs")
	}
}
