package chainstate

import "mutaset.dev/core/digest"

// PremineAllocation is one compile-time genesis output: an amount
// assigned to a receiver, identified by a fixed label rather than a
// real address since wallet key derivation is out of scope (§1).
type PremineAllocation struct {
	Label    string
	Receiver digest.Digest
	Amount   uint64
}

// premineAllocations is compile-time data (§9: "Genesis constants are
// compile-time data, not globals"), never mutated after package
// initialisation. The sum is exactly PremineCapUnits (§8: "Σ premine
// amounts ≤ 831_600 coin units").
var premineAllocations = []PremineAllocation{
	{Label: "foundation", Receiver: digest.HashVarlen([]byte("premine/foundation")), Amount: 400_000},
	{Label: "core-devs", Receiver: digest.HashVarlen([]byte("premine/core-devs")), Amount: 300_000},
	{Label: "bootstrap-reserve", Receiver: digest.HashVarlen([]byte("premine/bootstrap-reserve")), Amount: 131_600},
}

// TotalPremine returns the sum of every allocation's amount.
func TotalPremine() uint64 {
	var total uint64
	for _, a := range premineAllocations {
		total += a.Amount
	}
	return total
}
