package mutatorset

import "fmt"

// ErrorCode enumerates the ways a mutator-set operation can fail,
// mirroring the teacher's consensus.ErrorCode/TxError pair instead of a
// tree of bespoke error types.
type ErrorCode string

const (
	MS_ERR_INDEX_ALREADY_EVICTED ErrorCode = "MS_ERR_INDEX_ALREADY_EVICTED"
	MS_ERR_INDEX_OUT_OF_WINDOW   ErrorCode = "MS_ERR_INDEX_OUT_OF_WINDOW"
	MS_ERR_MISSING_CHUNK_WITNESS ErrorCode = "MS_ERR_MISSING_CHUNK_WITNESS"
	MS_ERR_CHUNK_AUTH_INVALID    ErrorCode = "MS_ERR_CHUNK_AUTH_INVALID"
	MS_ERR_LEAF_INDEX_RANGE      ErrorCode = "MS_ERR_LEAF_INDEX_RANGE"
	MS_ERR_DUPLICATE_REMOVAL     ErrorCode = "MS_ERR_DUPLICATE_REMOVAL"
)

// Error is a mutator-set operation failure: a stable code plus a
// human-readable detail.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func mserr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
