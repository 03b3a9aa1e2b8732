package mutatorset

import (
	"testing"

	"mutaset.dev/core/digest"
)

func itemAt(i int) digest.Digest {
	return digest.HashVarlen([]byte{'i', byte(i), byte(i >> 8)})
}

func randAt(i int) digest.Digest {
	return digest.HashVarlen([]byte{'r', byte(i), byte(i >> 8)})
}

func receiverAt(i int) digest.Digest {
	return digest.HashVarlen([]byte{'d', byte(i), byte(i >> 8)})
}

func TestEmptyAccumulatorHashIsStable(t *testing.T) {
	a, b := New(), New()
	if a.Hash() != b.Hash() {
		t.Fatalf("two empty accumulators should hash equally")
	}
}

func TestAddChangesHash(t *testing.T) {
	a := New()
	before := a.Hash()
	record := Commit(itemAt(0), randAt(0), receiverAt(0))
	a.Add(record)
	if a.Hash() == before {
		t.Fatalf("Add did not change the accumulator hash")
	}
}

func TestRoundTripAddProveVerify(t *testing.T) {
	a := New()
	item, rnd, recv := itemAt(0), randAt(0), receiverAt(0)
	record := Commit(item, rnd, recv)
	leafIndex := a.Add(record)

	proof, err := a.Prove(item, rnd, recv, leafIndex)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !a.Verify(item, proof) {
		t.Fatalf("freshly produced proof should verify")
	}
}

func TestRemoveKillsOnlyTarget(t *testing.T) {
	a := New()
	const n = 6
	items := make([]digest.Digest, n)
	proofs := make([]MembershipProof, n)
	for i := 0; i < n; i++ {
		items[i] = itemAt(i)
		record := Commit(items[i], randAt(i), receiverAt(i))

		held := make([]*MembershipProof, i)
		for j := 0; j < i; j++ {
			held[j] = &proofs[j]
		}
		leafIndex := a.Add(record, held...)

		p, err := a.Prove(items[i], randAt(i), receiverAt(i), leafIndex)
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		proofs[i] = p
	}

	const target = 2
	removal := a.Drop(proofs[target])
	if err := a.Remove(removal); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if a.Verify(items[target], proofs[target]) {
		t.Fatalf("removed item's proof should no longer verify")
	}
	for i := 0; i < n; i++ {
		if i == target {
			continue
		}
		if !a.Verify(items[i], proofs[i]) {
			t.Fatalf("unrelated item %d should still verify after an unrelated removal", i)
		}
	}
}

func TestBatchRemoveMatchesSequential(t *testing.T) {
	buildAndSpend := func(indices []int) digest.Digest {
		a := New()
		const n = 8
		items := make([]digest.Digest, n)
		proofs := make([]MembershipProof, n)
		for i := 0; i < n; i++ {
			items[i] = itemAt(i)
			record := Commit(items[i], randAt(i), receiverAt(i))
			leafIndex := a.Add(record)
			p, err := a.Prove(items[i], randAt(i), receiverAt(i), leafIndex)
			if err != nil {
				t.Fatalf("Prove(%d): %v", i, err)
			}
			proofs[i] = p
		}
		var records []RemovalRecord
		for _, i := range indices {
			records = append(records, a.Drop(proofs[i]))
		}
		if err := a.BatchRemove(records, nil); err != nil {
			t.Fatalf("BatchRemove: %v", err)
		}
		return a.Hash()
	}

	spendSequentially := func(indices []int) digest.Digest {
		a := New()
		const n = 8
		items := make([]digest.Digest, n)
		proofs := make([]MembershipProof, n)
		for i := 0; i < n; i++ {
			items[i] = itemAt(i)
			record := Commit(items[i], randAt(i), receiverAt(i))
			leafIndex := a.Add(record)
			p, err := a.Prove(items[i], randAt(i), receiverAt(i), leafIndex)
			if err != nil {
				t.Fatalf("Prove(%d): %v", i, err)
			}
			proofs[i] = p
		}
		for _, i := range indices {
			r := a.Drop(proofs[i])
			if err := a.Remove(r); err != nil {
				t.Fatalf("Remove(%d): %v", i, err)
			}
		}
		return a.Hash()
	}

	indices := []int{1, 4, 6}
	if buildAndSpend(indices) != spendSequentially(indices) {
		t.Fatalf("batch_remove and sequential remove produced different MSA hashes")
	}
}

func TestRemoveOfAlreadyFullySetIndicesIsANoOp(t *testing.T) {
	a := New()
	item, rnd, recv := itemAt(0), randAt(0), receiverAt(0)
	record := Commit(item, rnd, recv)
	leafIndex := a.Add(record)
	proof, err := a.Prove(item, rnd, recv, leafIndex)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	removal := a.Drop(proof)
	if err := a.Remove(removal); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	hashAfterFirst := a.Hash()
	if err := a.Remove(removal); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if a.Hash() != hashAfterFirst {
		t.Fatalf("re-removing an already-spent record changed the accumulator hash")
	}
}

func TestCanRemoveReflectsSpendState(t *testing.T) {
	a := New()
	item, rnd, recv := itemAt(0), randAt(0), receiverAt(0)
	record := Commit(item, rnd, recv)
	leafIndex := a.Add(record)
	proof, err := a.Prove(item, rnd, recv, leafIndex)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	removal := a.Drop(proof)
	canRemove, err := a.swbf.canRemove(removal.AbsoluteIndices, removal.TargetChunks)
	if err != nil || !canRemove {
		t.Fatalf("unspent item should be removable, got canRemove=%v err=%v", canRemove, err)
	}
	if err := a.Remove(removal); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	canRemove, err = a.swbf.canRemove(removal.AbsoluteIndices, removal.TargetChunks)
	if err != nil || canRemove {
		t.Fatalf("spent item should not be removable again, got canRemove=%v err=%v", canRemove, err)
	}
}

func TestManyAdditionsAcrossEvictionKeepRoundTripping(t *testing.T) {
	a := New()
	const n = ChunkSize + 50
	items := make([]digest.Digest, n)
	for i := 0; i < n; i++ {
		items[i] = itemAt(i)
		record := Commit(items[i], randAt(i), receiverAt(i))
		leafIndex := a.Add(record)
		proof, err := a.Prove(items[i], randAt(i), receiverAt(i), leafIndex)
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		if !a.Verify(items[i], proof) {
			t.Fatalf("item %d should verify immediately after being added and proved", i)
		}
	}
	if a.swbf.inactive.NumLeafs() == 0 {
		t.Fatalf("expected at least one chunk to have been evicted after %d additions", n)
	}
}
