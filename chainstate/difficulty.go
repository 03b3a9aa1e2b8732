package chainstate

import "math/big"

// Difficulty implements the proportional controller of §4.7:
//
//	err = (newTs - prevTs) - targetInterval   (signed, millis)
//	adj = -err / 100                          (integer division toward zero)
//	next = max(MINIMUM_DIFFICULTY, prevDifficulty + adj)
//
// targetInterval of 0 means "use TargetBlockIntervalMillis". At genesis
// height (prevHeight == 0, i.e. prevDifficulty is the genesis
// difficulty and there is no controller history yet) the parent's
// difficulty is returned unchanged, per §4.7's contract.
func Difficulty(newTs, prevTs uint64, prevDifficulty *big.Int, targetInterval uint64, prevHeight uint64) *big.Int {
	if prevHeight == 0 {
		return new(big.Int).Set(prevDifficulty)
	}
	if targetInterval == 0 {
		targetInterval = TargetBlockIntervalMillis
	}

	observed := int64(newTs) - int64(prevTs)
	errMillis := observed - int64(targetInterval)
	adj := -errMillis / 100 // toward zero, proportional gain 1/100

	next := new(big.Int).Add(prevDifficulty, big.NewInt(adj))
	if floor := MinimumDifficulty(); next.Cmp(floor) < 0 {
		return floor
	}
	return next
}
