// Package pipeline orchestrates one swap attempt end to end: quote, approval,
// transaction build, submission, and confirmation tracking. Each attempt is a
// fresh state machine; nothing is persisted across attempts.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	commonerrors "github.com/tarun-khatri/profitpath-smart-swap/common/errors"
	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/observability"
)

// Pipeline wires the swap stages together.
type Pipeline struct {
	quotes    QuoteSource
	approver  Approver
	builder   TransactionBuilder
	submitter TransactionSubmitter
	awaiter   StatusAwaiter
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

// Builder assembles a pipeline stage by stage.
type Builder struct {
	pipeline *Pipeline
}

// NewBuilder creates a pipeline builder.
func NewBuilder(logger *logrus.Logger) *Builder {
	return &Builder{pipeline: &Pipeline{logger: logger}}
}

// WithQuoteSource sets the quote source implementation.
func (b *Builder) WithQuoteSource(quotes QuoteSource) *Builder {
	b.pipeline.quotes = quotes
	return b
}

// WithApprover sets the approval manager implementation.
func (b *Builder) WithApprover(approver Approver) *Builder {
	b.pipeline.approver = approver
	return b
}

// WithTransactionBuilder sets the transaction builder implementation.
func (b *Builder) WithTransactionBuilder(builder TransactionBuilder) *Builder {
	b.pipeline.builder = builder
	return b
}

// WithSubmitter sets the transaction submitter implementation.
func (b *Builder) WithSubmitter(submitter TransactionSubmitter) *Builder {
	b.pipeline.submitter = submitter
	return b
}

// WithStatusAwaiter sets the confirmation tracker implementation.
func (b *Builder) WithStatusAwaiter(awaiter StatusAwaiter) *Builder {
	b.pipeline.awaiter = awaiter
	return b
}

// WithMetrics sets the metrics recorder. Optional.
func (b *Builder) WithMetrics(metrics *observability.Metrics) *Builder {
	b.pipeline.metrics = metrics
	return b
}

// Build returns the assembled pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	p := b.pipeline
	if p.quotes == nil || p.approver == nil || p.builder == nil || p.submitter == nil || p.awaiter == nil {
		return nil, errors.New("pipeline is missing a stage implementation")
	}
	return p, nil
}

// Quote fetches ranked quotes for a validated request.
func (p *Pipeline) Quote(ctx context.Context, req *types.SwapRequest) ([]types.Quote, error) {
	start := time.Now()
	quotes, err := p.quotes.GetQuote(ctx, req)
	p.metrics.ObserveStage("quote", start)

	if err != nil {
		p.metrics.CountQuote("error")
		return nil, err
	}

	p.metrics.CountQuote("ok")
	return quotes, nil
}

// Execute runs a selected quote through approval, build, submission, and
// confirmation. The returned attempt is always populated, also on failure, so
// callers can inspect how far the swap got; the error mirrors attempt.Err.
//
// A transaction handle obtained before a later stage fails stays on the
// attempt: once a transaction is broadcast the user must be able to find it.
func (p *Pipeline) Execute(ctx context.Context, req *types.SwapRequest, quote *types.Quote, wallets *types.WalletSet) (*types.SwapAttempt, error) {
	attempt := &types.SwapAttempt{
		ID:        uuid.NewString(),
		Request:   req,
		Quote:     quote,
		State:     types.StateQuoteReady,
		StartedAt: time.Now(),
	}

	log := p.logger.WithFields(logrus.Fields{
		"attempt":   attempt.ID,
		"fromChain": req.FromChain,
		"toChain":   req.ToChain,
	})

	if types.ChainTypeForIndex(req.FromChain) == types.EVM && !req.FromToken.IsNative() {
		attempt.State = types.StateApprovalPending

		start := time.Now()
		approved, err := p.approver.EnsureAllowance(ctx, req, quote, wallets.EVM)
		p.metrics.ObserveStage("approval", start)
		if err != nil {
			return p.fail(attempt, err)
		}
		if approved {
			log.Info("Token allowance established")
		}
	}

	attempt.State = types.StateBuilding

	payer, err := p.payerFor(req, wallets)
	if err != nil {
		return p.fail(attempt, err)
	}

	buildStart := time.Now()
	call, err := p.quotes.GetSwapCallData(ctx, req, quote)
	if err != nil {
		p.metrics.ObserveStage("build", buildStart)
		return p.fail(attempt, err)
	}

	tx, err := p.builder.Build(ctx, req, call, payer)
	p.metrics.ObserveStage("build", buildStart)
	if err != nil {
		return p.fail(attempt, err)
	}

	attempt.State = types.StateSubmitted

	submitStart := time.Now()
	handle, err := p.submitter.Submit(ctx, tx, wallets, req.FromChain, quote.CrossChain)
	p.metrics.ObserveStage("submit", submitStart)
	if err != nil {
		p.metrics.CountSubmission(string(tx.Kind), "error")
		return p.fail(attempt, err)
	}

	p.metrics.CountSubmission(string(tx.Kind), "ok")
	attempt.Handle = handle
	attempt.State = types.StateConfirming

	log.WithField("txHash", handle.Hash).Info("Swap submitted, tracking confirmation")

	confirmStart := time.Now()
	status, err := p.awaiter.Await(ctx, handle)
	p.metrics.ObserveStage("confirm", confirmStart)

	attempt.FinalStatus = status
	p.metrics.CountPollResult(string(status))

	// A caller cancelling mid-confirmation is abandonment, not an outcome.
	// The attempt keeps its handle and stays non-terminal.
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		attempt.Err = err
		log.Info("Confirmation tracking stopped, context done")
		return attempt, err
	}

	switch status {
	case types.StatusSucceeded:
		attempt.State = types.StateSucceeded
	case types.StatusTimedOut:
		attempt.State = types.StateTimedOut
		attempt.Err = commonerrors.ErrTimedOut
	case types.StatusError:
		attempt.State = types.StateFailed
		attempt.Err = errors.Wrap(commonerrors.ErrStatusCheckError, err.Error())
	default:
		attempt.State = types.StateFailed
		if err != nil {
			attempt.Err = err
		}
	}

	attempt.FinishedAt = time.Now()

	log.WithFields(logrus.Fields{
		"state":  attempt.State,
		"status": attempt.FinalStatus,
	}).Info("Swap attempt finished")

	return attempt, attempt.Err
}

// payerFor returns the sender address on the request's source chain.
func (p *Pipeline) payerFor(req *types.SwapRequest, wallets *types.WalletSet) (string, error) {
	switch types.ChainTypeForIndex(req.FromChain) {
	case types.SOLANA:
		if wallets.Solana == nil {
			return "", errors.Wrap(commonerrors.ErrSubmissionFailed, "no Solana wallet connected")
		}
		return wallets.Solana.PublicKey().String(), nil
	default:
		if wallets.EVM == nil {
			return "", errors.Wrap(commonerrors.ErrSubmissionFailed, "no EVM wallet connected")
		}
		return wallets.EVM.Address(), nil
	}
}

// fail marks the attempt failed with the given cause.
func (p *Pipeline) fail(attempt *types.SwapAttempt, err error) (*types.SwapAttempt, error) {
	attempt.State = types.StateFailed
	attempt.Err = err
	attempt.FinishedAt = time.Now()

	p.logger.WithFields(logrus.Fields{
		"attempt": attempt.ID,
		"state":   attempt.State,
	}).WithError(err).Error("Swap attempt failed")

	return attempt, err
}
