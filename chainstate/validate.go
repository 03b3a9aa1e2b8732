package chainstate

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"mutaset.dev/core/mutatorset"
	"mutaset.dev/core/proof"
)

// ChainParams carries the configurable knobs Validate needs beyond
// candidate/parent/now: the target block interval override (§4.7's
// "target_interval?"), the proof verifier collaborator (§6.3), and a
// logger for the "log the rule that failed" policy (§4.8, §7).
type ChainParams struct {
	TargetBlockInterval uint64 // millis; 0 = TargetBlockIntervalMillis
	Verifier            proof.Verifier
	Logger              *zap.Logger
}

func (p ChainParams) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Validate implements §4.8: every rule must hold for candidate to be
// accepted as parent's successor. The first failing rule is returned
// and logged at Warn with both blocks' digests; has_proof_of_work is
// checked separately by the caller, never here.
func Validate(candidate, parent *Block, now time.Time, params ChainParams) error {
	log := params.logger()
	fail := func(reason RejectReason, rule, msg string) error {
		err := rejectf(reason, "%s", msg)
		log.Warn("block rejected",
			zap.String("rule", rule),
			zap.String("reason", string(reason)),
			zap.String("candidate_digest", candidate.Digest().String()),
			zap.String("parent_digest", parent.Digest().String()),
			zap.String("detail", msg),
		)
		return err
	}

	ch, ph := candidate.header, parent.header

	// 0.a height
	if ch.Height != ph.Height+1 {
		return fail(ReasonHeightMismatch, "0.a", "candidate height does not follow parent")
	}

	// 0.b prev digest
	if ch.PrevBlockDigest != parent.Digest() {
		return fail(ReasonPrevDigestMismatch, "0.b", "candidate prev_digest does not match parent digest")
	}

	// 0.c block-MMR linkage: candidate's block-MMR must equal parent's
	// block-MMR with parent's own digest appended.
	expectedBlockMMR := parent.body.BlockMmrAccumulator.Clone()
	expectedBlockMMR.Append(parent.Digest())
	candBlockMMR := candidate.body.BlockMmrAccumulator
	if expectedBlockMMR.BagPeaks() != candBlockMMR.BagPeaks() || expectedBlockMMR.NumLeafs() != candBlockMMR.NumLeafs() {
		return fail(ReasonBlockMmrMismatch, "0.c", "candidate block_mmr is not parent.block_mmr with parent appended")
	}

	// 0.d minimum block time
	if ch.Timestamp < ph.Timestamp+MinimumBlockTimeMillis {
		return fail(ReasonTimestampTooEarly, "0.d", "candidate timestamp too close to parent")
	}

	// 0.e difficulty
	wantDifficulty := Difficulty(ch.Timestamp, ph.Timestamp, ph.Difficulty, params.TargetBlockInterval, ph.Height)
	if ch.Difficulty == nil || ch.Difficulty.Cmp(wantDifficulty) != 0 {
		return fail(ReasonDifficultyMismatch, "0.e", "candidate difficulty does not match controller prediction")
	}

	// 0.f future-timestamp limit
	nowMillis := uint64(now.UnixMilli())
	if ch.Timestamp >= nowMillis+MaxFutureDriftMillis {
		return fail(ReasonTimestampTooFarFuture, "0.f", "candidate timestamp too far in the future")
	}

	kernel := candidate.body.TransactionKernel

	// 1.a every input must be removable against parent's post-state MSA
	for i, r := range kernel.Inputs {
		ok, err := parent.body.MutatorSetAccumulator.CanRemove(r)
		if err != nil || !ok {
			return fail(ReasonRemovalNotAllowed, "1.a", indexedMsg("input", i, "not removable against parent MSA"))
		}
	}

	// 1.b input absolute-index sets pairwise distinct
	seen := make(map[mutatorset.AbsoluteIndexSet]struct{}, len(kernel.Inputs))
	for i, r := range kernel.Inputs {
		if _, dup := seen[r.AbsoluteIndices]; dup {
			return fail(ReasonDuplicateRemoval, "1.b", indexedMsg("input", i, "duplicate absolute-index set within block"))
		}
		seen[r.AbsoluteIndices] = struct{}{}
	}

	// 1.c applying the kernel's update to a copy of parent's MSA must
	// reproduce candidate's post-state MSA hash exactly.
	simulated := parent.body.MutatorSetAccumulator.Clone()
	update := mutatorset.Update{Removals: kernel.Inputs, Additions: kernel.Outputs}
	if err := update.Apply(simulated); err != nil {
		return fail(ReasonMsUpdateFailed, "1.c", err.Error())
	}
	if simulated.Hash() != candidate.body.MutatorSetAccumulator.Hash() {
		return fail(ReasonMutatorSetMismatch, "1.c", "simulated post-state MSA hash does not match candidate's")
	}

	// 1.d transaction timestamp must not be after the block's
	if kernel.Timestamp > ch.Timestamp {
		return fail(ReasonTransactionTimestampAfterBlock, "1.d", "transaction timestamp is after the block's")
	}

	// 1.e coinbase bound
	if kernel.Coinbase != nil {
		bound := MiningReward(ch.Height) + kernel.Fee
		if *kernel.Coinbase > bound {
			return fail(ReasonCoinbaseTooLarge, "1.e", "coinbase exceeds mining reward plus fee")
		}
	}

	// 1.f opaque proof verification
	claim := proof.Claim{KernelDigest: kernel.MastHash()}
	if params.Verifier == nil || !params.Verifier.Verify(claim, candidateProof(candidate)) {
		return fail(ReasonProofInvalid, "1.f", "proof verifier rejected candidate")
	}

	return nil
}

func indexedMsg(kind string, i int, msg string) string {
	return kind + " " + strconv.Itoa(i) + ": " + msg
}

// candidateProof interprets the block's opaque proof bytes as a
// proof.Proof. Genesis blocks carry the genesisProofBlob marker; mined
// blocks produced by this repository's demonstration tooling carry a
// Dummy-kind marker (see cmd/corectl); anything else is treated as
// Invalid, since real proof bytes are never decoded by this repository
// (§6.3).
func candidateProof(b *Block) proof.Proof {
	if b.header.Height == 0 {
		return proof.Proof{Kind: proof.Genesis}
	}
	if len(b.proof) == 1 && b.proof[0] == dummyProofMarker {
		return proof.Proof{Kind: proof.Dummy}
	}
	if len(b.proof) > 0 {
		return proof.Proof{Kind: proof.Real, Bytes: b.proof}
	}
	return proof.Proof{Kind: proof.Invalid}
}

const dummyProofMarker byte = 0xD0
