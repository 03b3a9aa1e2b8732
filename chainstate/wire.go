package chainstate

import (
	"encoding/binary"
	"fmt"
	"sort"

	"mutaset.dev/core/digest"
	"mutaset.dev/core/mmr"
	"mutaset.dev/core/mutatorset"

	"github.com/bits-and-blooms/bitset"
)

// cursor is an offset-tracked byte reader, the same shape as the
// teacher's wire.go cursor: every read*/decode* function advances
// cursor.pos and fails closed on truncated input.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, wireErr("truncated input")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readU8() (byte, error) {
	b, err := c.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU64() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readCount() (uint64, error) { return c.readU64() }

func (c *cursor) readDigest() (digest.Digest, error) {
	b, err := c.readExact(digest.Width * 8)
	if err != nil {
		return digest.Digest{}, err
	}
	return digest.Decode(b)
}

func wireErr(msg string) error { return fmt.Errorf("chainstate: wire: %s", msg) }

// appendU64 appends v as an 8-byte little-endian value, the teacher's
// AppendU64le shape generalised to field-element-width consensus data.
func appendU64(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func appendCount(dst []byte, n int) []byte { return appendU64(dst, uint64(n)) }

func appendDigest(dst []byte, d digest.Digest) []byte { return append(dst, d.Encode()...) }

func appendOptionU64(dst []byte, v *uint64) []byte {
	if v == nil {
		return append(dst, 0)
	}
	dst = append(dst, 1)
	return appendU64(dst, *v)
}

func readOptionU64(c *cursor) (*uint64, error) {
	tag, err := c.readU8()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	if tag != 1 {
		return nil, wireErr("invalid Option<u64> tag")
	}
	v, err := c.readU64()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func encodeU64(v uint64) []byte { return appendU64(nil, v) }

func encodeOptionU64(v *uint64) []byte { return appendOptionU64(nil, v) }

// --- addition / removal record encoding ---

func encodeAdditionRecord(r mutatorset.AdditionRecord) []byte {
	return appendDigest(nil, r.CanonicalCommitment)
}

func encodeAdditionRecords(rs []mutatorset.AdditionRecord) []byte {
	out := appendCount(nil, len(rs))
	for _, r := range rs {
		out = append(out, encodeAdditionRecord(r)...)
	}
	return out
}

func encodeAbsoluteIndices(idx mutatorset.AbsoluteIndexSet) []byte {
	out := make([]byte, 0, len(idx)*8)
	for _, v := range idx {
		out = appendU64(out, v)
	}
	return out
}

func encodeChunkWitness(w mutatorset.ChunkWitness) []byte {
	var bitsWords []uint64
	if w.Bits != nil {
		bitsWords = w.Bits.Bytes()
	}
	out := appendCount(nil, len(bitsWords))
	for _, word := range bitsWords {
		out = appendU64(out, word)
	}
	out = appendCount(out, len(w.Path.Siblings))
	for _, s := range w.Path.Siblings {
		out = appendDigest(out, s)
	}
	return out
}

// encodeRemovalRecord encodes r deterministically: TargetChunks is a map,
// so its entries are sorted by chunk index before serialisation — the
// MAST hash of a kernel must not depend on Go's randomised map iteration
// order.
func encodeRemovalRecord(r mutatorset.RemovalRecord) []byte {
	out := encodeAbsoluteIndices(r.AbsoluteIndices)

	chunkIndices := make([]uint64, 0, len(r.TargetChunks))
	for k := range r.TargetChunks {
		chunkIndices = append(chunkIndices, k)
	}
	sort.Slice(chunkIndices, func(i, j int) bool { return chunkIndices[i] < chunkIndices[j] })

	out = appendCount(out, len(chunkIndices))
	for _, ci := range chunkIndices {
		out = appendU64(out, ci)
		out = append(out, encodeChunkWitness(r.TargetChunks[ci])...)
	}
	return out
}

func encodeRemovalRecords(rs []mutatorset.RemovalRecord) []byte {
	out := appendCount(nil, len(rs))
	for _, r := range rs {
		out = append(out, encodeRemovalRecord(r)...)
	}
	return out
}

func encodePublicAnnouncements(as []PublicAnnouncement) []byte {
	out := appendCount(nil, len(as))
	for _, a := range as {
		out = appendCount(out, len(a.Payload))
		out = append(out, a.Payload...)
	}
	return out
}

// --- MMR authentication path encoding (decodeAuthPath is used by decodeChunkWitness) ---

func encodeAuthPath(p mmr.AuthenticationPath) []byte {
	out := appendCount(nil, len(p.Siblings))
	for _, s := range p.Siblings {
		out = appendDigest(out, s)
	}
	return out
}

func decodeAuthPath(c *cursor) (mmr.AuthenticationPath, error) {
	n, err := c.readCount()
	if err != nil {
		return mmr.AuthenticationPath{}, err
	}
	siblings := make([]digest.Digest, n)
	for i := range siblings {
		d, err := c.readDigest()
		if err != nil {
			return mmr.AuthenticationPath{}, err
		}
		siblings[i] = d
	}
	return mmr.AuthenticationPath{Siblings: siblings}, nil
}

func decodeChunkWitness(c *cursor) (mutatorset.ChunkWitness, error) {
	n, err := c.readCount()
	if err != nil {
		return mutatorset.ChunkWitness{}, err
	}
	words := make([]uint64, n)
	for i := range words {
		w, err := c.readU64()
		if err != nil {
			return mutatorset.ChunkWitness{}, err
		}
		words[i] = w
	}
	path, err := decodeAuthPath(c)
	if err != nil {
		return mutatorset.ChunkWitness{}, err
	}
	var bits *bitset.BitSet
	if len(words) > 0 {
		bits = bitset.From(words)
	}
	return mutatorset.ChunkWitness{Bits: bits, Path: path}, nil
}
