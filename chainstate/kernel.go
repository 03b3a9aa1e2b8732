// Package chainstate implements the block model and validation rules
// built on top of packages digest, mast, mmr, and mutatorset: the
// transaction kernel, block header/body/block, the difficulty
// controller, proof-of-work threshold, mining reward, genesis
// construction, and the block-acceptance predicate that composes all of
// them, mirroring the way the teacher's consensus package composes
// block_basic.go/validate.go/pow.go/fork_choice.go/subsidy.go over a
// single ErrorCode-based error model.
package chainstate

import (
	"mutaset.dev/core/digest"
	"mutaset.dev/core/mast"
	"mutaset.dev/core/mutatorset"
)

// MAST field discriminants for TransactionKernel. Stable: reordering is
// a hard fork (§4.1).
const (
	KernelFieldInputs int = iota
	KernelFieldOutputs
	KernelFieldPublicAnnouncements
	KernelFieldFee
	KernelFieldCoinbase
	KernelFieldTimestamp
	KernelFieldMutatorSetHash
)

// PublicAnnouncement is an opaque, caller-defined byte payload carried
// alongside a transaction's outputs (e.g. encrypted UTXO notifications).
// The kernel treats it as an uninterpreted blob.
type PublicAnnouncement struct {
	Payload []byte
}

// TransactionKernel is the immutable, MAST-hashable core of a
// transaction: everything consensus needs to validate and apply a
// spend, without the witness data (signatures, decryption keys) that
// only the spender needs.
type TransactionKernel struct {
	Inputs              []mutatorset.RemovalRecord
	Outputs             []mutatorset.AdditionRecord
	PublicAnnouncements []PublicAnnouncement
	Fee                 uint64
	Coinbase            *uint64 // nil when absent (Option<u64> per §6)
	Timestamp           uint64  // Unix millis
	MutatorSetHash      digest.Digest
}

// MastFields implements mast.Hashable in KernelField* order.
func (k TransactionKernel) MastFields() [][]byte {
	return [][]byte{
		encodeRemovalRecords(k.Inputs),
		encodeAdditionRecords(k.Outputs),
		encodePublicAnnouncements(k.PublicAnnouncements),
		encodeU64(k.Fee),
		encodeOptionU64(k.Coinbase),
		encodeU64(k.Timestamp),
		k.MutatorSetHash.Encode(),
	}
}

// MastHash returns the kernel's MAST root.
func (k TransactionKernel) MastHash() digest.Digest { return mast.Hash(k) }

// HasCoinbase reports whether this kernel mints new supply.
func (k TransactionKernel) HasCoinbase() bool { return k.Coinbase != nil }
