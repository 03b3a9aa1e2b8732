package chainstate

import "fmt"

// RejectReason enumerates the block-validation error kinds named in §7.
// It is a kind, not a type hierarchy, mirroring the teacher's ErrorCode
// string-constant convention in consensus/errors.go.
type RejectReason string

const (
	ReasonHeightMismatch                 RejectReason = "HEIGHT_MISMATCH"
	ReasonPrevDigestMismatch             RejectReason = "PREV_DIGEST_MISMATCH"
	ReasonBlockMmrMismatch               RejectReason = "BLOCK_MMR_MISMATCH"
	ReasonTimestampTooEarly              RejectReason = "TIMESTAMP_TOO_EARLY"
	ReasonTimestampTooFarFuture          RejectReason = "TIMESTAMP_TOO_FAR_FUTURE"
	ReasonDifficultyMismatch             RejectReason = "DIFFICULTY_MISMATCH"
	ReasonRemovalNotAllowed              RejectReason = "REMOVAL_NOT_ALLOWED"
	ReasonDuplicateRemoval               RejectReason = "DUPLICATE_REMOVAL"
	ReasonMutatorSetMismatch             RejectReason = "MUTATOR_SET_MISMATCH"
	ReasonTransactionTimestampAfterBlock RejectReason = "TRANSACTION_TIMESTAMP_AFTER_BLOCK"
	ReasonCoinbaseTooLarge               RejectReason = "COINBASE_TOO_LARGE"
	ReasonProofInvalid                   RejectReason = "PROOF_INVALID"
	ReasonMsUpdateFailed                 RejectReason = "MS_UPDATE_FAILED"
)

// ValidationError is the error type Validate returns: a RejectReason
// plus enough context to log (the rule name doubles as both), following
// the teacher's TxError{Code, Msg} shape.
type ValidationError struct {
	Reason RejectReason
	Msg    string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Msg)
}

func rejectf(reason RejectReason, format string, args ...any) error {
	return &ValidationError{Reason: reason, Msg: fmt.Sprintf(format, args...)}
}
