package chainstate

import (
	"math/big"

	"github.com/holiman/uint256"

	"mutaset.dev/core/digest"
)

// maxDigestU256 stands in for MAX_DIGEST (§4.8: "the digest interpreted
// as the product of per-limb maxima") projected onto the top four of
// Digest's five limbs. A literal 5-limb product is a ~320-bit quantity
// that does not fit the fixed 256-bit uint256.Int this package uses for
// the PoW threshold predicate (§2.1 of the expanded design assigns
// holiman/uint256 specifically to this arithmetic); dropping the
// least-significant limb is a deliberate, documented precision
// reduction, not an oversight — ordering under Digest.Compare agrees
// with ordering under this projection whenever the leading four limbs
// differ, which is true with overwhelming probability for real digests.
var maxDigestU256 = func() uint256.Int {
	var max uint256.Int
	max.Not(&max) // all-ones: 2^256 - 1
	return max
}()

// digestThresholdProjection packs a Digest's top four limbs into a
// uint256.Int, big-endian (limb 0 most significant), matching
// Digest.Compare's ordering.
func digestThresholdProjection(d digest.Digest) uint256.Int {
	var buf [32]byte
	for i := 0; i < 4; i++ {
		be := uint256.NewInt(d[i])
		b := be.Bytes32()
		copy(buf[i*8:i*8+8], b[24:32])
	}
	var out uint256.Int
	out.SetBytes(buf[:])
	return out
}

// Target computes target(difficulty) = floor(MAX_DIGEST / difficulty)
// (§4.8). difficulty must be positive; a non-positive difficulty is a
// programmer error (Validate never calls Target with one, since
// Difficulty saturates at MinimumDifficulty).
func Target(difficulty *big.Int) uint256.Int {
	d, overflow := uint256.FromBig(difficulty)
	if overflow || d.IsZero() {
		d = uint256.NewInt(1)
	}
	var out uint256.Int
	out.Div(&maxDigestU256, d)
	return out
}

// HasProofOfWork reports whether candidate's digest is at or below the
// threshold implied by parentDifficulty (§4.8: "checked separately by
// the caller, not inside validate").
func HasProofOfWork(candidateDigest digest.Digest, parentDifficulty *big.Int) bool {
	target := Target(parentDifficulty)
	got := digestThresholdProjection(candidateDigest)
	return got.Cmp(&target) <= 0
}
