package mast

import (
	"testing"

	"mutaset.dev/core/digest"
)

type fixedFields [][]byte

func (f fixedFields) MastFields() [][]byte { return f }

func TestHashDeterministic(t *testing.T) {
	f := fixedFields{[]byte("a"), []byte("b"), []byte("c")}
	if Hash(f) != Hash(f) {
		t.Fatalf("Hash not deterministic")
	}
}

func TestHashSensitiveToFieldOrder(t *testing.T) {
	a := fixedFields{[]byte("a"), []byte("b")}
	b := fixedFields{[]byte("b"), []byte("a")}
	if Hash(a) == Hash(b) {
		t.Fatalf("Hash should depend on field order")
	}
}

func TestHashSensitiveToAnyFieldMutation(t *testing.T) {
	base := fixedFields{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}
	root := Hash(base)
	for i := range base {
		mutated := append(fixedFields{}, base...)
		cp := append([]byte{}, mutated[i]...)
		cp = append(cp, 'x')
		mutated[i] = cp
		if Hash(mutated) == root {
			t.Fatalf("mutating field %d did not change MAST root", i)
		}
	}
}

func TestHashPadsToPowerOfTwo(t *testing.T) {
	three := fixedFields{[]byte("a"), []byte("b"), []byte("c")}
	four := fixedFields{[]byte("a"), []byte("b"), []byte("c"), {}}
	// A 3-field struct is padded to 4 leaves with a zero-digest leaf (not
	// the HashVarlen of an empty field, which is what four's last leaf
	// is), and must not collide with a 2-field struct.
	want := merkleRoot([]digest.Digest{
		digest.HashVarlen([]byte("a")),
		digest.HashVarlen([]byte("b")),
		digest.HashVarlen([]byte("c")),
		digest.Zero,
	})
	if Hash(three) != want {
		t.Fatalf("3-field struct was not padded to 4 leaves with a zero digest")
	}
	two := fixedFields{[]byte("a"), []byte("b")}
	if Hash(three) == Hash(two) {
		t.Fatalf("3-field and 2-field structs must not collide")
	}
	_ = four
}

func TestEmptyHashable(t *testing.T) {
	if Hash(fixedFields{}) != digest.Zero {
		t.Fatalf("empty field set should hash to the zero digest")
	}
}
