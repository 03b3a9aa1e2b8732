package mmr

import (
	"encoding/binary"
	"fmt"

	"mutaset.dev/core/digest"
)

// Encode serialises the full leaf history as a length-prefixed sequence
// of canonical digest encodings (§6: "Sequences are length-prefixed (u64
// element count)"). Peaks are not stored; Decode rebuilds them by
// replaying Append, which is cheap relative to a network round trip and
// guarantees the decoded accumulator's invariants hold by construction.
func (a *Accumulator) Encode() []byte {
	out := make([]byte, 8, 8+len(a.leaves)*digest.Width*8)
	binary.LittleEndian.PutUint64(out, uint64(len(a.leaves)))
	for _, l := range a.leaves {
		out = append(out, l.Encode()...)
	}
	return out
}

// Decode parses an Accumulator from the start of b, returning the
// number of bytes consumed so callers composing a larger wire format
// can keep reading after it.
func Decode(b []byte) (Accumulator, int, error) {
	if len(b) < 8 {
		return Accumulator{}, 0, fmt.Errorf("mmr: truncated accumulator length")
	}
	n := binary.LittleEndian.Uint64(b)
	pos := 8
	var a Accumulator
	for i := uint64(0); i < n; i++ {
		end := pos + digest.Width*8
		if end > len(b) {
			return Accumulator{}, 0, fmt.Errorf("mmr: truncated accumulator leaf %d", i)
		}
		d, err := digest.Decode(b[pos:end])
		if err != nil {
			return Accumulator{}, 0, err
		}
		a.Append(d)
		pos = end
	}
	return a, pos, nil
}
