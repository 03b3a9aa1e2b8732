package chainstate

import (
	"math/big"

	"mutaset.dev/core/digest"
	"mutaset.dev/core/mmr"
	"mutaset.dev/core/mutatorset"
)

// NetworkTag discriminates independently-genesis'd networks (§3.2).
type NetworkTag uint64

const (
	NetworkMain NetworkTag = iota
	NetworkTestnet
	NetworkRegTest
	NetworkBeta
)

// senderRandomness derives the network-tagged sender randomness used
// for every premine output (§4.10): [tag, 0, 0, 0, 0].
func senderRandomness(tag NetworkTag) digest.Digest {
	return digest.New(uint64(tag), 0, 0, 0, 0)
}

// premineItem commits a premine allocation's content (what would
// otherwise be a UTXO's amount-and-owner payload) to a single digest,
// the "item" half of mutatorset.Commit.
func premineItem(a PremineAllocation) digest.Digest {
	buf := appendU64(nil, a.Amount)
	buf = append(buf, a.Receiver.Encode()...)
	return digest.HashVarlen(buf)
}

// Genesis builds the deterministic genesis block for tag (§4.10): height
// 0, zero prev-digest, minimum difficulty, zero cumulative work, zero
// nonce, and a coinbase-only transaction kernel whose outputs are the
// premine allocations. Two different tags yield distinct genesis MSA
// hashes (§8: "Genesis uniqueness") since senderRandomness differs.
func Genesis(tag NetworkTag) *Block {
	rnd := senderRandomness(tag)
	emptyMSAHash := mutatorset.New().Hash()

	msa := mutatorset.New()
	outputs := make([]mutatorset.AdditionRecord, len(premineAllocations))
	for i, a := range premineAllocations {
		record := mutatorset.Commit(premineItem(a), rnd, a.Receiver)
		msa.Add(record)
		outputs[i] = record
	}

	coinbase := TotalPremine()
	kernel := TransactionKernel{
		Inputs:              nil,
		Outputs:             outputs,
		PublicAnnouncements: nil,
		Fee:                 0,
		Coinbase:            &coinbase,
		Timestamp:           0,
		MutatorSetHash:      emptyMSAHash,
	}

	body := BlockBody{
		TransactionKernel:      kernel,
		MutatorSetAccumulator:  msa,
		LockFreeMmrAccumulator: mmr.Accumulator{},
		BlockMmrAccumulator:    mmr.Accumulator{},
	}

	header := BlockHeader{
		Version:               1,
		Height:                0,
		PrevBlockDigest:       digest.Zero,
		Timestamp:             0,
		Nonce:                 [3]uint64{0, 0, 0},
		CumulativeProofOfWork: new(big.Int),
		Difficulty:            MinimumDifficulty(),
		MaxBlockSize:          MaxBlockSizeBytes,
	}

	return NewBlock(header, body, genesisProofBlob(tag))
}

// genesisProofBlob is the opaque marker a proof.GenesisVerifier
// recognises, so genesis blocks short-circuit verification without a
// real proof ever existing for them (§9: "Proof carriage").
func genesisProofBlob(tag NetworkTag) []byte {
	return []byte{'g', 'e', 'n', byte(tag)}
}
