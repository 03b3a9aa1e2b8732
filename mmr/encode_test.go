package mmr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var a Accumulator
	for i := 0; i < 23; i++ {
		a.Append(leafAt(i))
	}

	encoded := a.Encode()
	decoded, n, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(encoded) {
		t.Fatalf("Decode consumed %d bytes, want %d", n, len(encoded))
	}
	if diff := cmp.Diff(a, decoded, cmp.AllowUnexported(Accumulator{}, peak{})); diff != "" {
		t.Fatalf("decoded accumulator differs from the original (-want +got):\n%s", diff)
	}
	if reencoded := decoded.Encode(); string(reencoded) != string(encoded) {
		t.Fatalf("re-encoding a decoded accumulator did not round-trip byte-for-byte")
	}
}

func TestEncodeDecodeEmpty(t *testing.T) {
	var a Accumulator
	decoded, n, err := Decode(a.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 8 {
		t.Fatalf("empty accumulator should encode to just its 8-byte length prefix, consumed %d", n)
	}
	if decoded.NumLeafs() != 0 {
		t.Fatalf("expected 0 leaves")
	}
}
