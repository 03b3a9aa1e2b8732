package chainstate

import (
	"math/big"

	"mutaset.dev/core/digest"
)

// BlockHeader carries the plain (non-MAST-hashed) fields of a block:
// everything a light client needs without the body's transaction
// payload. Cumulative proof-of-work and difficulty are unsigned 160-bit
// integers, following the teacher's math/big idiom in fork_choice.go
// rather than a fixed-width type, since they are compared and added;
// they reach the block digest only through Encode's length-prefixed
// big-endian bytes.
type BlockHeader struct {
	Version               uint32
	Height                uint64
	PrevBlockDigest       digest.Digest
	Timestamp             uint64    // Unix millis
	Nonce                 [3]uint64 // 3 field elements, per §3
	CumulativeProofOfWork *big.Int
	Difficulty            *big.Int
	MaxBlockSize          uint64
}

// Encode returns the header's canonical byte encoding (§6): field
// elements as 8-byte little-endian, in declaration order. Big integers
// are encoded as a length-prefixed big-endian magnitude since they are
// not fixed-width field elements.
func (h BlockHeader) Encode() []byte {
	out := appendU64(nil, uint64(h.Version))
	out = appendU64(out, h.Height)
	out = appendDigest(out, h.PrevBlockDigest)
	out = appendU64(out, h.Timestamp)
	for _, limb := range h.Nonce {
		out = appendU64(out, limb)
	}
	out = appendBigInt(out, h.CumulativeProofOfWork)
	out = appendBigInt(out, h.Difficulty)
	out = appendU64(out, h.MaxBlockSize)
	return out
}

func appendBigInt(dst []byte, v *big.Int) []byte {
	if v == nil {
		v = new(big.Int)
	}
	b := v.Bytes()
	dst = appendCount(dst, len(b))
	return append(dst, b...)
}

func readBigInt(c *cursor) (*big.Int, error) {
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	b, err := c.readExact(int(n))
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// DecodeBlockHeader parses a BlockHeader from c, the inverse of Encode.
func DecodeBlockHeader(c *cursor) (BlockHeader, error) {
	var h BlockHeader
	version, err := c.readU64()
	if err != nil {
		return BlockHeader{}, err
	}
	h.Version = uint32(version)
	if h.Height, err = c.readU64(); err != nil {
		return BlockHeader{}, err
	}
	if h.PrevBlockDigest, err = c.readDigest(); err != nil {
		return BlockHeader{}, err
	}
	if h.Timestamp, err = c.readU64(); err != nil {
		return BlockHeader{}, err
	}
	for i := range h.Nonce {
		if h.Nonce[i], err = c.readU64(); err != nil {
			return BlockHeader{}, err
		}
	}
	if h.CumulativeProofOfWork, err = readBigInt(c); err != nil {
		return BlockHeader{}, err
	}
	if h.Difficulty, err = readBigInt(c); err != nil {
		return BlockHeader{}, err
	}
	if h.MaxBlockSize, err = c.readU64(); err != nil {
		return BlockHeader{}, err
	}
	return h, nil
}
