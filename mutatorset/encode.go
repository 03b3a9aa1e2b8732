package mutatorset

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"mutaset.dev/core/mmr"
)

// Encode serialises the full accumulator state: the AOCL's leaf history,
// the active window's bits, the inactive MMR's leaf history, the
// evicted-chunk content map, and the window offset. A decoded-then-
// re-encoded accumulator round-trips byte-for-byte (§6).
func (a *Accumulator) Encode() []byte {
	out := a.aocl.Encode()
	out = append(out, a.swbf.encode()...)
	return out
}

// DecodeAccumulator parses an Accumulator from the start of b, returning
// the number of bytes consumed.
func DecodeAccumulator(b []byte) (*Accumulator, int, error) {
	aocl, n, err := mmr.Decode(b)
	if err != nil {
		return nil, 0, err
	}
	s, m, err := decodeSWBF(b[n:])
	if err != nil {
		return nil, 0, err
	}
	return &Accumulator{aocl: aocl, swbf: s}, n + m, nil
}

func (s *swbf) encode() []byte {
	activeWords := s.active.Bytes()
	out := appendU64(nil, uint64(len(activeWords)))
	for _, w := range activeWords {
		out = appendU64(out, w)
	}
	out = appendU64(out, s.offset)
	out = append(out, s.inactive.Encode()...)

	chunkIndices := make([]uint64, 0, len(s.evictedChunks))
	for k := range s.evictedChunks {
		chunkIndices = append(chunkIndices, k)
	}
	sort.Slice(chunkIndices, func(i, j int) bool { return chunkIndices[i] < chunkIndices[j] })

	out = appendU64(out, uint64(len(chunkIndices)))
	for _, ci := range chunkIndices {
		out = appendU64(out, ci)
		words := s.evictedChunks[ci].Bytes()
		out = appendU64(out, uint64(len(words)))
		for _, w := range words {
			out = appendU64(out, w)
		}
	}
	return out
}

func decodeSWBF(b []byte) (*swbf, int, error) {
	pos := 0
	readU64 := func() (uint64, error) {
		if pos+8 > len(b) {
			return 0, fmt.Errorf("mutatorset: truncated swbf encoding")
		}
		v := binary.LittleEndian.Uint64(b[pos:])
		pos += 8
		return v, nil
	}

	activeLen, err := readU64()
	if err != nil {
		return nil, 0, err
	}
	activeWords := make([]uint64, activeLen)
	for i := range activeWords {
		if activeWords[i], err = readU64(); err != nil {
			return nil, 0, err
		}
	}
	offset, err := readU64()
	if err != nil {
		return nil, 0, err
	}
	inactive, n, err := mmr.Decode(b[pos:])
	if err != nil {
		return nil, 0, err
	}
	pos += n

	numChunks, err := readU64()
	if err != nil {
		return nil, 0, err
	}
	chunks := make(map[uint64]*bitset.BitSet, numChunks)
	for i := uint64(0); i < numChunks; i++ {
		ci, err := readU64()
		if err != nil {
			return nil, 0, err
		}
		wordCount, err := readU64()
		if err != nil {
			return nil, 0, err
		}
		words := make([]uint64, wordCount)
		for j := range words {
			if words[j], err = readU64(); err != nil {
				return nil, 0, err
			}
		}
		chunks[ci] = bitset.From(words)
	}

	return &swbf{
		active:        bitset.From(activeWords),
		inactive:      inactive,
		evictedChunks: chunks,
		offset:        offset,
	}, pos, nil
}

func appendU64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}
