// Package digest implements the fixed-width field-element digest used
// throughout the mutator-set core, and the hashing primitives built on it.
package digest

// fieldPrime is the Oxfoi/Goldilocks prime p = 2^64 - 2^32 + 1, the field
// over which every Digest limb lives. It is small enough that a limb pair
// multiplication fits in 128 bits (math/bits.Mul64) and the reduction is a
// handful of adds/subs, the same shape as the finite-field helpers the
// teacher reaches for in its big-integer PoW code (consensus/pow.go), just
// sized down to a single machine word instead of a 256-bit big.Int.
const fieldPrime uint64 = 0xFFFFFFFF00000001

// reduce folds a raw uint64 into the canonical field representative,
// i.e. the value mod fieldPrime. Inputs are always < 2*fieldPrime in this
// package (callers only ever add two already-reduced limbs or a single
// 128-bit product's reduction), so one conditional subtraction suffices.
func reduce(x uint64) uint64 {
	if x >= fieldPrime {
		return x - fieldPrime
	}
	return x
}

// addMod returns (a + b) mod fieldPrime.
func addMod(a, b uint64) uint64 {
	sum := a + b
	if sum < a || sum >= fieldPrime {
		sum -= fieldPrime
	}
	return sum
}

// mulMod returns (a * b) mod fieldPrime using a 128-bit intermediate
// product and Goldilocks' cheap reduction (p = 2^64 - 2^32 + 1).
func mulMod(a, b uint64) uint64 {
	hi, lo := mul64(a, b)
	return reduceWide(hi, lo)
}

// mul64 returns the 128-bit product a*b as (hi, lo).
func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xFFFFFFFF
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	t0 := aLo * bLo
	t1 := aLo*bHi + aHi*bLo
	t2 := aHi * bHi

	lo = t0 + (t1 << 32)
	carry := uint64(0)
	if lo < t0 {
		carry = 1
	}
	hi = t2 + (t1 >> 32) + carry
	return hi, lo
}

// reduceWide reduces a 128-bit value (hi<<64 | lo) mod fieldPrime, using
// the identity 2^64 = 2^32 - 1 (mod p).
func reduceWide(hi, lo uint64) uint64 {
	hiLo := hi & 0xFFFFFFFF
	hiHi := hi >> 32

	// lo + hiLo*2^32 - hiLo - hiHi (mod p), computed carefully to avoid
	// underflow with unsigned wraparound then re-reduction.
	var acc uint64 = lo
	acc = addMod(acc, reduce(hiLo<<32))
	// subtract hiLo and hiHi, modularly
	acc = subMod(acc, reduce(hiLo))
	acc = subMod(acc, reduce(hiHi))
	return acc
}

func subMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return fieldPrime - (b - a)
}
