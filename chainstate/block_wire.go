package chainstate

import (
	"mutaset.dev/core/mmr"
	"mutaset.dev/core/mutatorset"
)

// EncodeBlock returns block's full canonical wire encoding: header, then
// body (kernel, post-tx MSA, lock-free MMR, block MMR), then the opaque
// proof blob. DecodeBlock is its exact inverse (§6: "A decoded-then-
// re-encoded block must round-trip byte-for-byte").
func EncodeBlock(b *Block) []byte {
	out := b.header.Encode()
	out = append(out, encodeKernel(b.body.TransactionKernel)...)
	out = append(out, b.body.MutatorSetAccumulator.Encode()...)
	out = append(out, b.body.LockFreeMmrAccumulator.Encode()...)
	out = append(out, b.body.BlockMmrAccumulator.Encode()...)
	out = appendCount(out, len(b.proof))
	out = append(out, b.proof...)
	return out
}

// DecodeBlock parses a block from its canonical wire encoding. The
// decoded block's digest cache starts empty (§6).
func DecodeBlock(raw []byte) (*Block, error) {
	c := newCursor(raw)
	header, err := DecodeBlockHeader(c)
	if err != nil {
		return nil, err
	}
	kernel, err := decodeKernel(c)
	if err != nil {
		return nil, err
	}
	msa, n, err := mutatorset.DecodeAccumulator(c.b[c.pos:])
	if err != nil {
		return nil, err
	}
	c.pos += n
	lockFree, n, err := mmr.Decode(c.b[c.pos:])
	if err != nil {
		return nil, err
	}
	c.pos += n
	blockMMR, n, err := mmr.Decode(c.b[c.pos:])
	if err != nil {
		return nil, err
	}
	c.pos += n

	proofLen, err := c.readCount()
	if err != nil {
		return nil, err
	}
	proofBytes, err := c.readExact(int(proofLen))
	if err != nil {
		return nil, err
	}
	proof := make([]byte, len(proofBytes))
	copy(proof, proofBytes)

	body := BlockBody{
		TransactionKernel:      kernel,
		MutatorSetAccumulator:  msa,
		LockFreeMmrAccumulator: lockFree,
		BlockMmrAccumulator:    blockMMR,
	}
	return NewBlock(header, body, proof), nil
}

func encodeKernel(k TransactionKernel) []byte {
	out := encodeRemovalRecords(k.Inputs)
	out = append(out, encodeAdditionRecords(k.Outputs)...)
	out = append(out, encodePublicAnnouncements(k.PublicAnnouncements)...)
	out = appendU64(out, k.Fee)
	out = appendOptionU64(out, k.Coinbase)
	out = appendU64(out, k.Timestamp)
	out = appendDigest(out, k.MutatorSetHash)
	return out
}

func decodeKernel(c *cursor) (TransactionKernel, error) {
	inputs, err := decodeRemovalRecords(c)
	if err != nil {
		return TransactionKernel{}, err
	}
	outputs, err := decodeAdditionRecords(c)
	if err != nil {
		return TransactionKernel{}, err
	}
	announcements, err := decodePublicAnnouncements(c)
	if err != nil {
		return TransactionKernel{}, err
	}
	fee, err := c.readU64()
	if err != nil {
		return TransactionKernel{}, err
	}
	coinbase, err := readOptionU64(c)
	if err != nil {
		return TransactionKernel{}, err
	}
	timestamp, err := c.readU64()
	if err != nil {
		return TransactionKernel{}, err
	}
	msHash, err := c.readDigest()
	if err != nil {
		return TransactionKernel{}, err
	}
	return TransactionKernel{
		Inputs:              inputs,
		Outputs:             outputs,
		PublicAnnouncements: announcements,
		Fee:                 fee,
		Coinbase:            coinbase,
		Timestamp:           timestamp,
		MutatorSetHash:      msHash,
	}, nil
}

func decodeAdditionRecords(c *cursor) ([]mutatorset.AdditionRecord, error) {
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]mutatorset.AdditionRecord, n)
	for i := range out {
		d, err := c.readDigest()
		if err != nil {
			return nil, err
		}
		out[i] = mutatorset.AdditionRecord{CanonicalCommitment: d}
	}
	return out, nil
}

func decodeRemovalRecords(c *cursor) ([]mutatorset.RemovalRecord, error) {
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]mutatorset.RemovalRecord, n)
	for i := range out {
		r, err := decodeRemovalRecord(c)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func decodeRemovalRecord(c *cursor) (mutatorset.RemovalRecord, error) {
	var idx mutatorset.AbsoluteIndexSet
	for i := range idx {
		v, err := c.readU64()
		if err != nil {
			return mutatorset.RemovalRecord{}, err
		}
		idx[i] = v
	}
	numChunks, err := c.readCount()
	if err != nil {
		return mutatorset.RemovalRecord{}, err
	}
	chunks := make(map[uint64]mutatorset.ChunkWitness, numChunks)
	for i := uint64(0); i < numChunks; i++ {
		ci, err := c.readU64()
		if err != nil {
			return mutatorset.RemovalRecord{}, err
		}
		w, err := decodeChunkWitness(c)
		if err != nil {
			return mutatorset.RemovalRecord{}, err
		}
		chunks[ci] = w
	}
	return mutatorset.RemovalRecord{AbsoluteIndices: idx, TargetChunks: chunks}, nil
}

func decodePublicAnnouncements(c *cursor) ([]PublicAnnouncement, error) {
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	out := make([]PublicAnnouncement, n)
	for i := range out {
		length, err := c.readCount()
		if err != nil {
			return nil, err
		}
		payload, err := c.readExact(int(length))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, len(payload))
		copy(buf, payload)
		out[i] = PublicAnnouncement{Payload: buf}
	}
	return out, nil
}
