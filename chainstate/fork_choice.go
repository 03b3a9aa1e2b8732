package chainstate

import "math/big"

// WorkFromDifficulty computes the work a single block at difficulty d
// contributes to cumulative proof-of-work: floor(2^256 / target(d)).
// Grounded on the teacher's WorkFromTarget (consensus/fork_choice.go),
// generalised from a 32-byte SHA3 target to this package's uint256-
// projected PoW threshold, but kept on math/big for the accumulation
// itself since cumulative work over a long chain can exceed 256 bits
// (§2.1: "no third-party bigint library displaces that pattern").
func WorkFromDifficulty(difficulty *big.Int) *big.Int {
	target := Target(difficulty)
	targetBig := target.ToBig()
	if targetBig.Sign() <= 0 {
		return new(big.Int)
	}
	two256 := new(big.Int).Lsh(big.NewInt(1), 256)
	return new(big.Int).Div(two256, targetBig)
}

// CumulativeWork sums WorkFromDifficulty over a chain's per-block
// difficulties, mirroring ChainWorkFromTargets.
func CumulativeWork(difficulties []*big.Int) *big.Int {
	total := new(big.Int)
	for _, d := range difficulties {
		total.Add(total, WorkFromDifficulty(d))
	}
	return total
}

// PreferredTip reports whether candidate's cumulative work exceeds the
// current tip's, the fork-choice comparator consumers apply once
// Validate accepts a competing chain.
func PreferredTip(candidateWork, tipWork *big.Int) bool {
	return candidateWork.Cmp(tipWork) > 0
}
