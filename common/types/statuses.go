package types

// TxStatus is the tracked state of a broadcast transaction.
type TxStatus string

const (
	// StatusPending indicates the provider has not yet reported a terminal state.
	StatusPending TxStatus = "PENDING"
	// StatusSucceeded indicates the provider reported on-chain success.
	StatusSucceeded TxStatus = "SUCCEEDED"
	// StatusFailed indicates the provider reported on-chain failure.
	StatusFailed TxStatus = "FAILED"
	// StatusError indicates the status query itself failed; the transaction
	// outcome is unknown and the poller does not retry past it.
	StatusError TxStatus = "ERROR"
	// StatusTimedOut indicates the polling budget was exhausted while the
	// transaction was still pending. Distinct from StatusFailed: it carries no
	// claim about whether funds moved.
	StatusTimedOut TxStatus = "TIMED_OUT"
)

// Terminal reports whether the poller must stop at this status.
func (s TxStatus) Terminal() bool {
	return s != StatusPending
}

// Guidance returns the user-facing remedial hint for a terminal status.
// TimedOut deliberately reads as unknown rather than failed.
func (s TxStatus) Guidance() string {
	switch s {
	case StatusSucceeded:
		return "swap completed"
	case StatusFailed:
		return "swap failed on-chain"
	case StatusError:
		return "status check failed; transaction was broadcast, check an explorer"
	case StatusTimedOut:
		return "confirmation status unknown, check an explorer"
	default:
		return "swap pending"
	}
}
