package proof

// GenesisVerifier accepts only Genesis-kind proofs, the short-circuit
// genesis uses instead of a real proof (§9). It rejects everything
// else, including Real proofs, since this repository never implements
// real verification (§6.3: "a Real proof is never verified by this
// repository").
type GenesisVerifier struct{}

func (GenesisVerifier) Verify(_ Claim, p Proof) bool { return p.Kind == Genesis }

// DummyVerifier accepts any Dummy-kind proof unconditionally, matching
// the teacher's DevStdCryptoProvider's role: a development-only stand-in
// that exists to unblock tests and the demonstration CLI, never to
// claim real security properties.
type DummyVerifier struct{}

func (DummyVerifier) Verify(_ Claim, p Proof) bool { return p.Kind == Dummy }

// ChainVerifier accepts Genesis proofs unconditionally and Dummy proofs
// unconditionally, rejecting Invalid and Real — the verifier a running
// node wires in before a real proof system exists, composing the two
// short-circuits so callers need not special-case genesis blocks.
type ChainVerifier struct{}

func (ChainVerifier) Verify(_ Claim, p Proof) bool {
	return p.Kind == Genesis || p.Kind == Dummy
}
