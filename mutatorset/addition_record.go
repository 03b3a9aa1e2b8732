package mutatorset

import "mutaset.dev/core/digest"

// AdditionRecord wraps a blinded commitment to a spendable output. It is
// the only artefact Commit produces and the only thing Add consumes —
// neither ever sees the underlying item, randomness, or receiver digest.
type AdditionRecord struct {
	CanonicalCommitment digest.Digest
}

// Commit computes an AdditionRecord for (item, senderRandomness,
// receiverDigest). It is a pure function: calling it twice with the same
// inputs produces the same record, and it never touches an accumulator.
func Commit(item, senderRandomness, receiverDigest digest.Digest) AdditionRecord {
	return AdditionRecord{CanonicalCommitment: digest.Commit(item, senderRandomness, receiverDigest)}
}
