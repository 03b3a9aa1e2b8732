// Package mmr implements an append-only Merkle mountain range
// accumulator: the data structure behind the AOCL, the inactive part of
// the sliding-window Bloom filter, and the block-MMR. One generic type
// serves all three call sites, the way the teacher reuses a single
// tagged pairwise-hash routine (consensus/merkle.go) for both the
// transaction Merkle root and the witness commitment root.
package mmr

import "mutaset.dev/core/digest"

// peak is one "mountain" in the range: a subtree root together with its
// height (2^height leaves).
type peak struct {
	digest digest.Digest
	height uint8
}

// Accumulator is an append-only Merkle mountain range. The zero value is
// the empty accumulator.
//
// leaves retains every leaf ever appended so that Prove can rebuild the
// mountain a given leaf belongs to on demand. This trades the memory
// an archival node would save by discarding old mountains for a much
// simpler, obviously-correct implementation — exactly the kind of
// trade-off the teacher's in-memory connect_block_inmem.go makes instead
// of a full UTXO database.
type Accumulator struct {
	leaves []digest.Digest
	peaks  []peak
}

// AuthenticationPath is the sibling list from a leaf to the peak of the
// mountain containing it, bottom to top.
type AuthenticationPath struct {
	Siblings []digest.Digest
}

// NumLeafs returns the number of leaves appended so far.
func (a *Accumulator) NumLeafs() uint64 { return uint64(len(a.leaves)) }

// Clone returns a deep copy: the returned Accumulator shares no backing
// array with a, so appending or updating one never affects the other.
func (a *Accumulator) Clone() Accumulator {
	leaves := make([]digest.Digest, len(a.leaves))
	copy(leaves, a.leaves)
	peaks := make([]peak, len(a.peaks))
	copy(peaks, a.peaks)
	return Accumulator{leaves: leaves, peaks: peaks}
}

// Append adds leaf to the log and returns its leaf index.
//
// Amortised O(log n): a new height-0 peak is created and merged upward
// with existing peaks of equal height, exactly like a binary counter
// increment carrying — the same "carry while equal" shape as the
// teacher's compactsize code walks a byte at a time, just one tree level
// at a time here.
func (a *Accumulator) Append(leaf digest.Digest) uint64 {
	leafIndex := uint64(len(a.leaves))
	a.leaves = append(a.leaves, leaf)

	cur := peak{digest: leaf, height: 0}
	for len(a.peaks) > 0 && a.peaks[len(a.peaks)-1].height == cur.height {
		top := a.peaks[len(a.peaks)-1]
		a.peaks = a.peaks[:len(a.peaks)-1]
		cur = peak{digest: digest.HashPair(top.digest, cur.digest), height: cur.height + 1}
	}
	a.peaks = append(a.peaks, cur)
	return leafIndex
}

// peakDigests returns the current peaks left (oldest, tallest) to right
// (newest, shortest).
func (a *Accumulator) peakDigests() []digest.Digest {
	out := make([]digest.Digest, len(a.peaks))
	for i, p := range a.peaks {
		out[i] = p.digest
	}
	return out
}

// BagPeaks deterministically folds the current peaks into one digest:
// the empty MMR bags to the zero digest; otherwise peaks are combined
// from high index (the newest, smallest mountain) down to low index
// (the oldest, tallest mountain).
func (a *Accumulator) BagPeaks() digest.Digest {
	return BagPeaks(a.peakDigests())
}

// BagPeaks is the free-function form, usable by verifiers that only
// hold a peak list (no leaf history) — e.g. an accumulator received over
// the wire that must be re-bagged to check its claimed hash.
func BagPeaks(peaks []digest.Digest) digest.Digest {
	if len(peaks) == 0 {
		return digest.Zero
	}
	acc := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		acc = digest.HashPair(peaks[i], acc)
	}
	return acc
}

// mountain describes one peak's leaf range, derived from the binary
// decomposition of a leaf count: leafCount's set bits, read from the
// most significant down, each describe a mountain of 2^height leaves,
// consuming leaves left to right.
type mountain struct {
	height    uint8
	start     uint64
	size      uint64
	peakIndex int
}

func decompose(numLeafs uint64) []mountain {
	if numLeafs == 0 {
		return nil
	}
	var mountains []mountain
	start := uint64(0)
	peakIdx := 0
	for h := 63; h >= 0; h-- {
		bit := uint64(1) << uint(h)
		if numLeafs&bit != 0 {
			mountains = append(mountains, mountain{height: uint8(h), start: start, size: bit, peakIndex: peakIdx})
			start += bit
			peakIdx++
		}
	}
	return mountains
}

// Prove returns the authentication path from leafIndex to the peak of
// the mountain containing it, under the accumulator's current state.
func (a *Accumulator) Prove(leafIndex uint64) (AuthenticationPath, error) {
	if leafIndex >= uint64(len(a.leaves)) {
		return AuthenticationPath{}, errLeafOutOfRange
	}
	m, found := mountainFor(decompose(uint64(len(a.leaves))), leafIndex)
	if !found {
		return AuthenticationPath{}, errLeafOutOfRange
	}

	nodes := append([]digest.Digest(nil), a.leaves[m.start:m.start+m.size]...)
	localIndex := leafIndex - m.start

	var siblings []digest.Digest
	idx := localIndex
	for levelSize := m.size; levelSize > 1; levelSize /= 2 {
		siblingIdx := idx ^ 1
		siblings = append(siblings, nodes[siblingIdx])
		next := make([]digest.Digest, levelSize/2)
		for i := uint64(0); i < levelSize/2; i++ {
			next[i] = digest.HashPair(nodes[2*i], nodes[2*i+1])
		}
		nodes = next
		idx /= 2
	}
	return AuthenticationPath{Siblings: siblings}, nil
}

func mountainFor(mountains []mountain, leafIndex uint64) (mountain, bool) {
	for _, m := range mountains {
		if leafIndex >= m.start && leafIndex < m.start+m.size {
			return m, true
		}
	}
	return mountain{}, false
}

// foldPath recombines a leaf with its authentication path, bottom to
// top, into the digest its mountain's peak should equal. Shared by
// Verify (which compares the fold to a known peak) and Light.ApplyUpdate
// (which installs the fold as the new peak after a leaf changes).
func foldPath(leaf digest.Digest, path AuthenticationPath, localIndex uint64) digest.Digest {
	cur := leaf
	idx := localIndex
	for _, sib := range path.Siblings {
		if idx%2 == 0 {
			cur = digest.HashPair(cur, sib)
		} else {
			cur = digest.HashPair(sib, cur)
		}
		idx /= 2
	}
	return cur
}

// Verify checks an authentication path against a peak list and leaf
// count supplied by the caller (not necessarily this accumulator's
// current state — a verifier typically only has a wire-transmitted
// snapshot of peaks/numLeafs).
func Verify(leafIndex uint64, leaf digest.Digest, path AuthenticationPath, peaks []digest.Digest, numLeafs uint64) bool {
	if leafIndex >= numLeafs {
		return false
	}
	mountains := decompose(numLeafs)
	m, found := mountainFor(mountains, leafIndex)
	if !found || m.peakIndex >= len(peaks) {
		return false
	}
	localIndex := leafIndex - m.start
	return foldPath(leaf, path, localIndex) == peaks[m.peakIndex]
}

// Peaks exposes the current peak digests (oldest/tallest first), e.g.
// for serialising an accumulator onto the wire.
func (a *Accumulator) Peaks() []digest.Digest { return a.peakDigests() }

// ApplyUpdate replaces the leaf at leafIndex with newLeaf, recomputing
// that leaf's mountain peak via the authentication path proving the old
// position (see Light.ApplyUpdate for why the siblings stay valid), and
// updates the retained leaf history so later Prove calls see the change.
func (a *Accumulator) ApplyUpdate(leafIndex uint64, newLeaf digest.Digest, path AuthenticationPath) error {
	if leafIndex >= uint64(len(a.leaves)) {
		return errLeafOutOfRange
	}
	m, found := mountainFor(decompose(uint64(len(a.leaves))), leafIndex)
	if !found {
		return errLeafOutOfRange
	}
	localIndex := leafIndex - m.start
	a.peaks[m.peakIndex].digest = foldPath(newLeaf, path, localIndex)
	a.leaves[leafIndex] = newLeaf
	return nil
}

// Light is a peaks-only Merkle mountain range: it tracks peaks and leaf
// count but retains no leaf history, the representation an accumulator
// (as opposed to an archival index) keeps. It cannot produce
// authentication paths itself, but it can append new leaves and accept
// an externally supplied path to absorb a leaf *update* — the operation
// the sliding-window Bloom filter's inactive chunks need when a spend
// flips a bit inside an already-evicted chunk.
type Light struct {
	peaks    []peak
	numLeafs uint64
}

// NumLeafs returns the number of leaves ever appended to this peak set.
func (l *Light) NumLeafs() uint64 { return l.numLeafs }

// Peaks returns the current peak digests, oldest (tallest) first.
func (l *Light) Peaks() []digest.Digest {
	out := make([]digest.Digest, len(l.peaks))
	for i, p := range l.peaks {
		out[i] = p.digest
	}
	return out
}

// BagPeaks folds the current peaks into one digest; see BagPeaks.
func (l *Light) BagPeaks() digest.Digest { return BagPeaks(l.Peaks()) }

// Append adds a new leaf digest and returns its leaf index, using the
// same carry-merge algorithm as Accumulator.Append.
func (l *Light) Append(leaf digest.Digest) uint64 {
	leafIndex := l.numLeafs
	l.numLeafs++

	cur := peak{digest: leaf, height: 0}
	for len(l.peaks) > 0 && l.peaks[len(l.peaks)-1].height == cur.height {
		top := l.peaks[len(l.peaks)-1]
		l.peaks = l.peaks[:len(l.peaks)-1]
		cur = peak{digest: digest.HashPair(top.digest, cur.digest), height: cur.height + 1}
	}
	l.peaks = append(l.peaks, cur)
	return leafIndex
}

// ApplyUpdate replaces the leaf at leafIndex with newLeaf, given an
// authentication path proving the *old* leaf's position (the siblings
// along that path are unaffected by the update, since they root
// different subtrees, so folding newLeaf through the same path yields
// the mountain's new peak directly).
func (l *Light) ApplyUpdate(leafIndex uint64, newLeaf digest.Digest, path AuthenticationPath) error {
	m, found := mountainFor(decompose(l.numLeafs), leafIndex)
	if !found {
		return errLeafOutOfRange
	}
	localIndex := leafIndex - m.start
	l.peaks[m.peakIndex].digest = foldPath(newLeaf, path, localIndex)
	return nil
}
