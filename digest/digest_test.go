package digest

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := New(1, 2, 3, 4, 5)
	got, err := Decode(d.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != d {
		t.Fatalf("round-trip mismatch: got %v want %v", got, d)
	}
}

func TestCompareOrdering(t *testing.T) {
	low := New(1, 0, 0, 0, 0)
	high := New(2, 0, 0, 0, 0)
	if !low.Less(high) {
		t.Fatalf("expected %v < %v", low, high)
	}
	if high.Less(low) {
		t.Fatalf("expected %v !< %v", high, low)
	}
	if low.Compare(low) != 0 {
		t.Fatalf("expected equal digests to compare 0")
	}
}

func TestZeroIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatalf("Zero.IsZero() = false")
	}
	if New(0, 0, 0, 0, 1).IsZero() {
		t.Fatalf("non-zero digest reported as zero")
	}
}

func TestHashVarlenDeterministic(t *testing.T) {
	a := HashVarlen([]byte("hello"))
	b := HashVarlen([]byte("hello"))
	if a != b {
		t.Fatalf("HashVarlen not deterministic: %v != %v", a, b)
	}
	c := HashVarlen([]byte("hellp"))
	if a == c {
		t.Fatalf("HashVarlen collided on distinct inputs")
	}
}

func TestHashPairOrderSensitive(t *testing.T) {
	a := HashVarlen([]byte("left"))
	b := HashVarlen([]byte("right"))
	if HashPair(a, b) == HashPair(b, a) {
		t.Fatalf("HashPair should be order-sensitive")
	}
}

func TestCommitDeterministic(t *testing.T) {
	item := HashVarlen([]byte("item"))
	rnd := HashVarlen([]byte("randomness"))
	recv := HashVarlen([]byte("receiver"))
	c1 := Commit(item, rnd, recv)
	c2 := Commit(item, rnd, recv)
	if c1 != c2 {
		t.Fatalf("Commit not deterministic")
	}
	c3 := Commit(item, recv, rnd)
	if c1 == c3 {
		t.Fatalf("Commit should be sensitive to argument order")
	}
}
