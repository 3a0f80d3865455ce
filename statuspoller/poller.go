// Package statuspoller tracks a submitted swap until it reaches a terminal
// state or the polling budget runs out. The budget keeps the wait bounded; a
// swap that outlives it is reported as timed out, not failed, since the chain
// may still confirm it later.
package statuspoller

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
)

const (
	defaultInterval    = 5 * time.Second
	defaultMaxAttempts = 20
)

// StatusSource answers point-in-time status queries for a transaction,
// implemented by the aggregator client.
type StatusSource interface {
	TransactionStatus(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error)
}

// Poller polls a status source on a fixed interval with a bounded attempt
// budget.
type Poller struct {
	source      StatusSource
	interval    time.Duration
	maxAttempts int
	logger      *logrus.Logger
}

// Option adjusts poller settings.
type Option func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) { p.interval = interval }
}

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(attempts int) Option {
	return func(p *Poller) { p.maxAttempts = attempts }
}

// New creates a poller with a 5 second interval and a 20 attempt budget
// unless overridden.
func New(source StatusSource, logger *logrus.Logger, opts ...Option) *Poller {
	p := &Poller{
		source:      source,
		interval:    defaultInterval,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Await polls until the transaction reaches a terminal status, the attempt
// budget is exhausted, or the context is cancelled. The first check runs
// immediately so an already-confirmed transaction resolves without waiting a
// full interval.
//
// A status query error is terminal: the poller reports StatusError rather
// than burning the remaining budget against a dead endpoint. Context
// cancellation returns the context error with StatusPending; the caller
// abandoned the wait, so no terminal state is fabricated.
func (p *Poller) Await(ctx context.Context, handle *types.TxHandle) (types.TxStatus, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status, err := p.source.TransactionStatus(ctx, handle)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"txHash":  handle.Hash,
				"attempt": attempt,
			}).WithError(err).Error("Status query failed")
			return types.StatusError, err
		}

		if status.Terminal() {
			p.logger.WithFields(logrus.Fields{
				"txHash": handle.Hash,
				"status": status,
			}).Info("Transaction reached terminal status")
			return status, nil
		}

		if attempt == p.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return types.StatusPending, ctx.Err()
		case <-ticker.C:
		}
	}

	p.logger.WithFields(logrus.Fields{
		"txHash":   handle.Hash,
		"attempts": p.maxAttempts,
	}).Warn("Polling budget exhausted")

	return types.StatusTimedOut, nil
}
