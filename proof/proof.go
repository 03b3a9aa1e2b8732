// Package proof models the zero-knowledge proof system as an opaque
// verifier oracle (§1, §6.3): consensus consumes a Verifier, never
// implements one. Grounded on the teacher's crypto.CryptoProvider /
// DevStdCryptoProvider shape (an interface plus a development-only
// implementation that exists to unblock early tooling, not to claim
// real security properties).
package proof

import "mutaset.dev/core/digest"

// Claim is what a Proof attests to: a transaction or block kernel
// digest, treated as an uninterpreted field-element sequence by this
// package.
type Claim struct {
	KernelDigest digest.Digest
}

// Kind discriminates Proof's tagged-variant shape (§9: "Implementations
// should express it as a tagged variant {Invalid, Genesis, Real(bytes),
// Dummy}").
type Kind int

const (
	Invalid Kind = iota
	Genesis
	Real
	Dummy
)

// Proof is the opaque bag of field elements a transaction or block
// carries; Bytes is only meaningful when Kind is Real.
type Proof struct {
	Kind  Kind
	Bytes []byte
}

// Verifier is the narrow interface consensus code consumes (§6.3):
// deterministic, pure, total.
type Verifier interface {
	Verify(claim Claim, p Proof) bool
}
