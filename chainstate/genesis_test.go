package chainstate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mutaset.dev/core/proof"
)

func TestGenesisAcceptance(t *testing.T) {
	g := Genesis(NetworkRegTest)

	coinbase := g.Body().TransactionKernel.Coinbase
	require.NotNil(t, coinbase)
	require.Equal(t, TotalPremine(), *coinbase)
	require.LessOrEqual(t, TotalPremine(), PremineCapUnits)
	require.Equal(t, uint64(0), g.Header().Height)
	require.Zero(t, g.Header().Difficulty.Cmp(MinimumDifficulty()))

	claim := proof.Claim{KernelDigest: g.Body().TransactionKernel.MastHash()}
	require.True(t, (proof.GenesisVerifier{}).Verify(claim, proof.Proof{Kind: proof.Genesis}))
}

// TestGenesisHasNoProofOfWork mirrors the genesis-acceptance scenario:
// a genesis block has no parent, so checking its own digest against its
// own difficulty is a vacuous call a caller should never make, but
// HasProofOfWork still answers it, and for an un-mined digest the
// answer is false.
func TestGenesisHasNoProofOfWork(t *testing.T) {
	g := Genesis(NetworkRegTest)
	require.False(t, HasProofOfWork(g.Digest(), g.Header().Difficulty))
}

func TestGenesisUniquenessAcrossNetworkTags(t *testing.T) {
	tags := []NetworkTag{NetworkMain, NetworkTestnet, NetworkRegTest, NetworkBeta}
	seen := make(map[string]NetworkTag, len(tags))
	for _, tag := range tags {
		h := Genesis(tag).Body().MutatorSetAccumulator.Hash().String()
		if other, dup := seen[h]; dup {
			t.Fatalf("network tags %v and %v produced the same genesis MSA hash", other, tag)
		}
		seen[h] = tag
	}
}

func TestPremineCap(t *testing.T) {
	if TotalPremine() != PremineCapUnits {
		t.Fatalf("TotalPremine() = %d, want exactly %d", TotalPremine(), PremineCapUnits)
	}
	if TotalPremine() > TotalSupply {
		t.Fatalf("premine exceeds total supply")
	}
}
