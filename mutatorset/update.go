package mutatorset

// Update bundles the removal records and addition records a transaction
// kernel's inputs and outputs translate to. Applying it to a mutator set
// is how a block advances the accumulator from the parent's post-state
// to the candidate's.
type Update struct {
	Removals  []RemovalRecord
	Additions []AdditionRecord
}

// Apply applies removals first, then additions, to msa in place.
// Removals are validated for acceptance (can_remove) by the caller
// before this is ever invoked — Apply itself is total on any record
// shaped like a real one, per §7's contract for Remove/Add.
func (u Update) Apply(msa *Accumulator) error {
	for _, r := range u.Removals {
		if err := msa.Remove(r); err != nil {
			return err
		}
	}
	for _, add := range u.Additions {
		msa.Add(add)
	}
	return nil
}
