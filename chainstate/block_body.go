package chainstate

import (
	"mutaset.dev/core/digest"
	"mutaset.dev/core/mast"
	"mutaset.dev/core/mmr"
	"mutaset.dev/core/mutatorset"
)

// MAST field discriminants for BlockBody (§4.6).
const (
	BodyFieldTransactionKernel int = iota
	BodyFieldMutatorSetAccumulator
	BodyFieldLockFreeMmrAccumulator
	BodyFieldBlockMmrAccumulator
)

// BlockBody bundles the transaction kernel with the three accumulators
// whose post-states the kernel transitions: the post-application MSA,
// the lock-free MMR (always-spendable outputs such as premine/anchor
// safety valves, carried from original_source/.../block_body.rs as an
// append-only sibling the distilled spec does not itself elaborate),
// and the block-MMR (an append-only log of every prior block's digest;
// it never includes the current block — §3).
type BlockBody struct {
	TransactionKernel      TransactionKernel
	MutatorSetAccumulator  *mutatorset.Accumulator
	LockFreeMmrAccumulator mmr.Accumulator
	BlockMmrAccumulator    mmr.Accumulator
}

// MastFields implements mast.Hashable in BodyField* order.
func (b BlockBody) MastFields() [][]byte {
	return [][]byte{
		b.TransactionKernel.MastHash().Encode(),
		b.MutatorSetAccumulator.Hash().Encode(),
		b.LockFreeMmrAccumulator.BagPeaks().Encode(),
		b.BlockMmrAccumulator.BagPeaks().Encode(),
	}
}

// MastHash returns the body's MAST root.
func (b BlockBody) MastHash() digest.Digest { return mast.Hash(b) }
