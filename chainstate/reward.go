package chainstate

// MiningReward computes mining_reward(h) (§4.9): start at
// InitialMiningReward coin units, halve by integer shift for every
// completed GenerationLength-block generation. Grounded on the
// teacher's BlockSubsidy halving-by-shift shape (consensus/subsidy.go),
// deliberately without its tail-emission floor: spec.md §4.9 specifies
// plain halving only, and §8's invariants name no tail-emission
// property, so the floor is not carried forward (see DESIGN.md).
func MiningReward(height uint64) uint64 {
	generation := height / GenerationLength
	if generation >= 64 {
		return 0 // shifting a uint64 by 64+ is undefined; reward has long since flattened to zero
	}
	return InitialMiningReward >> generation
}
