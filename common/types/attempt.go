package types

import "time"

// AttemptState is the lifecycle state of one swap attempt.
type AttemptState string

const (
	StateIdle            AttemptState = "IDLE"
	StateQuoteRequested  AttemptState = "QUOTE_REQUESTED"
	StateQuoteReady      AttemptState = "QUOTE_READY"
	StateApprovalPending AttemptState = "APPROVAL_PENDING"
	StateBuilding        AttemptState = "BUILDING"
	StateSubmitted       AttemptState = "SUBMITTED"
	StateConfirming      AttemptState = "CONFIRMING"
	StateSucceeded       AttemptState = "SUCCEEDED"
	StateFailed          AttemptState = "FAILED"
	StateTimedOut        AttemptState = "TIMED_OUT"
)

// Terminal reports whether the attempt has reached a final state.
func (s AttemptState) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateTimedOut:
		return true
	default:
		return false
	}
}

// SwapAttempt tracks one user-initiated swap through the pipeline. It is
// process-local and discarded once terminal and acknowledged; a retried swap
// gets a fresh attempt with a fresh quote and transaction.
type SwapAttempt struct {
	ID          string
	Request     *SwapRequest
	Quote       *Quote
	State       AttemptState
	Handle      *TxHandle
	FinalStatus TxStatus
	Err         error
	StartedAt   time.Time
	FinishedAt  time.Time
}
