package mutatorset

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"

	"mutaset.dev/core/digest"
	"mutaset.dev/core/mmr"
)

// ChunkWitness is the caller-supplied evidence needed to read or flip a
// bit inside a chunk that has already slid out of the active window:
// the chunk's own bits plus an authentication path against the inactive
// MMR's current peaks. Membership proofs and removal records carry one
// of these per distinct evicted chunk their index set touches.
type ChunkWitness struct {
	Bits *bitset.BitSet
	Path mmr.AuthenticationPath
}

func (w ChunkWitness) clone() ChunkWitness {
	return ChunkWitness{Bits: w.Bits.Clone(), Path: w.Path}
}

// swbf is the sliding-window Bloom filter: WindowSize live bits plus an
// MMR of evicted ChunkSize-bit chunks. The MSA's own commitment only
// ever depends on the inactive MMR's bagged peaks, never on
// evictedChunks directly; evictedChunks is this process's own record of
// chunk content, the same role an archival collaborator would otherwise
// serve, kept here so a single in-process accumulator is self-contained
// enough to prove and verify against its own history.
type swbf struct {
	active        *bitset.BitSet
	inactive      mmr.Accumulator
	evictedChunks map[uint64]*bitset.BitSet
	offset        uint64 // absolute index of active bit 0; always a multiple of ChunkSize
}

func newSWBF() *swbf {
	return &swbf{active: bitset.New(WindowSize), evictedChunks: map[uint64]*bitset.BitSet{}}
}

func (s *swbf) clone() *swbf {
	chunks := make(map[uint64]*bitset.BitSet, len(s.evictedChunks))
	for k, v := range s.evictedChunks {
		chunks[k] = v.Clone()
	}
	return &swbf{
		active:        s.active.Clone(),
		inactive:      s.inactive.Clone(),
		evictedChunks: chunks,
		offset:        s.offset,
	}
}

// debugChunkWitness returns this process's own record of an evicted
// chunk's content plus a fresh authentication path against the current
// inactive peaks, for building a membership proof's target chunks right
// after eviction.
func (s *swbf) debugChunkWitness(chunkIndex uint64) (*bitset.BitSet, mmr.AuthenticationPath, bool) {
	bits, ok := s.evictedChunks[chunkIndex]
	if !ok {
		return nil, mmr.AuthenticationPath{}, false
	}
	path, err := s.inactive.Prove(chunkIndex)
	if err != nil {
		return nil, mmr.AuthenticationPath{}, false
	}
	return bits, path, true
}

func chunkDigest(bits *bitset.BitSet) digest.Digest {
	words := bits.Bytes()
	buf := make([]byte, len(words)*8)
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return digest.HashVarlen(buf)
}

func activeWindowDigest(active *bitset.BitSet) digest.Digest {
	return chunkDigest(active)
}

// hash is the SWBF's contribution to the MSA commitment: the pairwise
// hash of the inactive MMR's bagged peaks with the active window's
// digest (§3: "pairwise hash of SWBF_inactive.bag_peaks() and
// hash(SWBF_active)").
func (s *swbf) hash() digest.Digest {
	return digest.HashPair(s.inactive.BagPeaks(), activeWindowDigest(s.active))
}

// maybeEvict slides the window once aoclNumLeafs has crossed a
// ChunkSize boundary, driven solely by the AOCL's leaf count as §9
// requires — eviction never depends on which bits a remove flipped.
func (s *swbf) maybeEvict(aoclNumLeafs uint64) {
	targetOffset := ChunkSize * (aoclNumLeafs / ChunkSize)
	for s.offset < targetOffset {
		evicted := bitset.New(ChunkSize)
		for i := uint(0); i < ChunkSize; i++ {
			if s.active.Test(i) {
				evicted.Set(i)
			}
		}
		chunkIndex := s.inactive.Append(chunkDigest(evicted))
		s.evictedChunks[chunkIndex] = evicted

		shifted := bitset.New(WindowSize)
		for i := uint(0); i < WindowSize-ChunkSize; i++ {
			if s.active.Test(i + ChunkSize) {
				shifted.Set(i)
			}
		}
		s.active = shifted
		s.offset += ChunkSize
	}
}

// readBit dispatches a single absolute index to the active window or to
// a caller-supplied chunk witness, depending on where it currently
// falls.
func (s *swbf) readBit(index uint64, witnesses map[uint64]ChunkWitness) (bool, error) {
	if index >= s.offset && index < s.offset+WindowSize {
		return s.active.Test(uint(index - s.offset)), nil
	}
	if index >= s.offset+WindowSize {
		return false, mserr(MS_ERR_INDEX_OUT_OF_WINDOW, "absolute index has no assigned chunk yet")
	}

	chunkIndex := index / ChunkSize
	w, ok := witnesses[chunkIndex]
	if !ok {
		return false, mserr(MS_ERR_MISSING_CHUNK_WITNESS, "no witness supplied for evicted chunk")
	}
	if !mmr.Verify(chunkIndex, chunkDigest(w.Bits), w.Path, s.inactive.Peaks(), s.inactive.NumLeafs()) {
		return false, mserr(MS_ERR_CHUNK_AUTH_INVALID, "chunk witness does not authenticate against current inactive peaks")
	}
	return w.Bits.Test(uint(index % ChunkSize)), nil
}

// canRemove reports whether at least one of indices currently reads 0,
// i.e. the item these indices represent has not already been spent.
func (s *swbf) canRemove(indices [NumTrials]uint64, witnesses map[uint64]ChunkWitness) (bool, error) {
	for _, idx := range indices {
		bit, err := s.readBit(idx, witnesses)
		if err != nil {
			return false, err
		}
		if !bit {
			return true, nil
		}
	}
	return false, nil
}

// setBits flips every bit in indices to 1, updating the active window
// directly and, for already-evicted indices, folding the flip through
// the caller's chunk witness into a new inactive-MMR peak.
func (s *swbf) setBits(indices [NumTrials]uint64, witnesses map[uint64]ChunkWitness) error {
	touched := map[uint64]*bitset.BitSet{}
	for _, idx := range indices {
		if idx >= s.offset && idx < s.offset+WindowSize {
			s.active.Set(uint(idx - s.offset))
			continue
		}
		if idx >= s.offset+WindowSize {
			return mserr(MS_ERR_INDEX_OUT_OF_WINDOW, "absolute index has no assigned chunk yet")
		}
		chunkIndex := idx / ChunkSize
		w, ok := witnesses[chunkIndex]
		if !ok {
			return mserr(MS_ERR_MISSING_CHUNK_WITNESS, "no witness supplied for evicted chunk")
		}
		bits, seen := touched[chunkIndex]
		if !seen {
			if !mmr.Verify(chunkIndex, chunkDigest(w.Bits), w.Path, s.inactive.Peaks(), s.inactive.NumLeafs()) {
				return mserr(MS_ERR_CHUNK_AUTH_INVALID, "chunk witness does not authenticate against current inactive peaks")
			}
			bits = w.Bits.Clone()
			touched[chunkIndex] = bits
		}
		bits.Set(uint(idx % ChunkSize))
	}
	for chunkIndex, bits := range touched {
		w := witnesses[chunkIndex]
		if err := s.inactive.ApplyUpdate(chunkIndex, chunkDigest(bits), w.Path); err != nil {
			return mserr(MS_ERR_CHUNK_AUTH_INVALID, err.Error())
		}
		s.evictedChunks[chunkIndex] = bits
	}
	return nil
}
