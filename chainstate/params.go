package chainstate

import "math/big"

// Consensus constants. Compile-time data, never globals (§9): nothing in
// this package reads or writes mutable package-level state.
const (
	// TargetBlockIntervalMillis is T in the difficulty controller (§4.7).
	TargetBlockIntervalMillis uint64 = 10 * 60 * 1000 // 10 minutes

	// MinimumBlockTimeMillis is the minimum allowed gap between a block
	// and its parent's timestamp (§4.8 rule 0.d).
	MinimumBlockTimeMillis uint64 = 1000

	// MaxFutureDriftMillis bounds how far into the future a candidate's
	// timestamp may sit relative to the validator's clock (§4.8 rule 0.f,
	// §8 scenario 3).
	MaxFutureDriftMillis uint64 = 2 * 60 * 60 * 1000 // 2 hours

	// GenerationLength is the number of blocks between mining-reward
	// halvings (§4.9).
	GenerationLength uint64 = 210_000

	// InitialMiningReward is mining_reward(h) for h in the first
	// generation, in coin units (§4.9: "start at 100 units").
	InitialMiningReward uint64 = 100

	// TotalSupply and PremineCapUnits bound genesis construction (§8:
	// "Premine cap. Σ premine amounts ≤ 831_600 coin units").
	TotalSupply     uint64 = 42_000_000
	PremineCapUnits uint64 = 831_600

	// MaxBlockSizeBytes is the default header MaxBlockSize for genesis
	// and mined blocks.
	MaxBlockSizeBytes uint64 = 1 << 20
)

// MinimumDifficulty is the floor the difficulty controller saturates at
// (§4.7); it is not a global: every call returns a fresh big.Int built
// from a constant literal, so no caller can mutate a shared value.
func MinimumDifficulty() *big.Int { return big.NewInt(1024) }
