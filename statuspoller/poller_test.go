package statuspoller

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

type scriptedSource struct {
	statuses []types.TxStatus
	errs     []error
	calls    int
}

func (s *scriptedSource) TransactionStatus(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	if s.errs != nil && s.errs[idx] != nil {
		return types.StatusPending, s.errs[idx]
	}
	return s.statuses[idx], nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testHandle() *types.TxHandle {
	return &types.TxHandle{Hash: "0xabc", ChainID: "1"}
}

func TestImmediateSuccess(t *testing.T) {
	source := &scriptedSource{statuses: []types.TxStatus{types.StatusSucceeded}}
	p := New(source, quietLogger(), WithInterval(time.Hour))

	start := time.Now()
	status, err := p.Await(context.Background(), testHandle())
	require.NoError(t, err)
	assert.Equal(t, types.StatusSucceeded, status)
	assert.Equal(t, 1, source.calls, "first check must run without waiting an interval")
	assert.Less(t, time.Since(start), time.Second)
}

// A transaction that confirms on the final allowed attempt still resolves as
// succeeded, not timed out.
func TestSuccessOnLastAttempt(t *testing.T) {
	statuses := make([]types.TxStatus, 20)
	for i := 0; i < 19; i++ {
		statuses[i] = types.StatusPending
	}
	statuses[19] = types.StatusSucceeded

	source := &scriptedSource{statuses: statuses}
	p := New(source, quietLogger(), WithInterval(time.Millisecond))

	status, err := p.Await(context.Background(), testHandle())
	require.NoError(t, err)
	assert.Equal(t, types.StatusSucceeded, status)
	assert.Equal(t, 20, source.calls)
}

func TestBudgetExhaustedTimesOut(t *testing.T) {
	source := &scriptedSource{statuses: []types.TxStatus{types.StatusPending}}
	p := New(source, quietLogger(), WithInterval(time.Millisecond), WithMaxAttempts(5))

	status, err := p.Await(context.Background(), testHandle())
	require.NoError(t, err)
	assert.Equal(t, types.StatusTimedOut, status)
	assert.Equal(t, 5, source.calls)
}

func TestFailureIsTerminal(t *testing.T) {
	source := &scriptedSource{statuses: []types.TxStatus{types.StatusPending, types.StatusFailed}}
	p := New(source, quietLogger(), WithInterval(time.Millisecond))

	status, err := p.Await(context.Background(), testHandle())
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, status)
	assert.Equal(t, 2, source.calls)
}

func TestQueryErrorStopsPolling(t *testing.T) {
	queryErr := errors.New("status endpoint unavailable")
	source := &scriptedSource{
		statuses: []types.TxStatus{types.StatusPending},
		errs:     []error{queryErr},
	}
	p := New(source, quietLogger(), WithInterval(time.Millisecond))

	status, err := p.Await(context.Background(), testHandle())
	assert.Equal(t, types.StatusError, status)
	assert.Equal(t, queryErr, err)
	assert.Equal(t, 1, source.calls)
}

func TestContextCancellation(t *testing.T) {
	source := &scriptedSource{statuses: []types.TxStatus{types.StatusPending}}
	p := New(source, quietLogger(), WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	status, err := p.Await(ctx, testHandle())
	assert.Equal(t, types.StatusPending, status)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimedOutGuidance(t *testing.T) {
	assert.Contains(t, types.StatusTimedOut.Guidance(), "explorer")
	assert.True(t, types.StatusTimedOut.Terminal())
	assert.NotEqual(t, types.StatusFailed, types.StatusTimedOut)
}
