package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRegistryUnavailable indicates the token listing collaborator could not be reached.
	ErrRegistryUnavailable = errors.New("token registry unavailable")
	// ErrInvalidRequest indicates a swap request violating the request invariants.
	ErrInvalidRequest = errors.New("invalid swap request")
	// ErrNoRouteFound indicates the provider returned zero routes for a valid request.
	ErrNoRouteFound = errors.New("no route found")
	// ErrApprovalRejected indicates the user declined the approval wallet prompt.
	ErrApprovalRejected = errors.New("approval rejected by user")
	// ErrApprovalFailed indicates the approval transaction reverted or no approval payload was returned.
	ErrApprovalFailed = errors.New("approval failed")
	// ErrMalformedQuote indicates a provider transaction payload missing required fields.
	ErrMalformedQuote = errors.New("malformed quote payload")
	// ErrLookupTableUnresolvable indicates an address lookup table address that does not resolve on-chain.
	ErrLookupTableUnresolvable = errors.New("address lookup table unresolvable")
	// ErrUserRejected indicates the user declined the swap wallet prompt.
	ErrUserRejected = errors.New("transaction rejected by user")
	// ErrInsufficientFunds indicates the sender cannot cover value plus fees.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSubmissionFailed indicates a wallet send failure other than rejection or funding.
	ErrSubmissionFailed = errors.New("transaction submission failed")
	// ErrStatusCheckError indicates the status collaborator query failed.
	ErrStatusCheckError = errors.New("transaction status check failed")
	// ErrTimedOut indicates the confirmation polling budget was exhausted.
	ErrTimedOut = errors.New("confirmation tracking timed out")
)

// UpstreamError carries a non-success response from the aggregation provider,
// including the human-readable message extracted from the response body.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream provider error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("upstream provider error (status %d): %s", e.StatusCode, e.Message)
}

// IsUpstream reports whether err wraps an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
