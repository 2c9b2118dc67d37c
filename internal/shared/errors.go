package shared

import (
	"errors"
	"fmt"
)

var (
	ErrDecodeFailure       = errors.New("decode failure")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUndefinedRatio      = errors.New("undefined ratio")
	ErrUpstreamFetch       = errors.New("upstream fetch failure")

	ErrWebsiteNotFound     = errors.New("website not found")
	ErrSelectionSuperseded = errors.New("selection superseded")
	ErrNoView              = errors.New("no view for current selection")
)

// UpstreamError is returned when a collaborator (ledger node, product store)
// fails or times out. It matches ErrUpstreamFetch with errors.Is.
type UpstreamError struct {
	Collaborator string
	Op           string
	Err          error
}

func NewUpstreamError(collaborator, op string, err error) *UpstreamError {
	return &UpstreamError{Collaborator: collaborator, Op: op, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collaborator, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFetch
}

// DecodeError describes why a single record could not be decoded.
type DecodeError struct {
	SessionKey string
	Index      int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record %d of session %q: %v", e.Index, e.SessionKey, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}
