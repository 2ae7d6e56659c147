package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/returnhelper/returnsvc/internal/adapter/carrier"
	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// TrackerFacade exposes the subset of application functionality required by the poller.
type TrackerFacade interface {
	ReturnsForTracking(ctx context.Context, limit int) ([]model.Return, error)
	TrackCarrier(ctx context.Context, returnID string) (*model.TrackingEvent, error)
	ApplyTrackingUpdate(ctx context.Context, expected model.ReturnStatus, event model.TrackingEvent) error
}

// TrackingPoller polls the carrier tracking system and advances return
// statuses concurrently.
type TrackingPoller struct {
	facade       TrackerFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Return
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTrackingPoller constructs the tracking worker pool.
func NewTrackingPoller(facade TrackerFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *TrackingPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &TrackingPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Return, batchSize*workers),
	}
}

// Start launches background polling.
func (p *TrackingPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TrackingPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TrackingPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TrackingPoller) fetchAndDispatch(ctx context.Context) {
	returns, err := p.facade.ReturnsForTracking(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch returns for tracking failed", slog.String("error", err.Error()))
		return
	}
	for _, ret := range returns {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- ret:
		}
	}
}

func (p *TrackingPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ret, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleReturn(ctx, ret)
		}
	}
}

func (p *TrackingPoller) handleReturn(ctx context.Context, ret model.Return) {
	event, err := p.facade.TrackCarrier(ctx, ret.ID)
	if err != nil {
		switch e := err.(type) {
		case carrier.TooManyRequestsError:
			p.logger.Warn("carrier rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, carrier.ErrNotTracked) {
				return
			}
			p.logger.Error("carrier fetch failed", slog.String("return", ret.ID), slog.String("error", err.Error()))
		}
		return
	}

	if event.Status == ret.Status {
		return
	}

	if err := p.facade.ApplyTrackingUpdate(ctx, ret.Status, *event); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrConflict):
			// someone advanced the return first, the next poll re-reads it
			p.logger.Warn("stale tracking update discarded", slog.String("return", ret.ID))
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			p.logger.Warn("carrier reported illegal transition",
				slog.String("return", ret.ID),
				slog.String("from", string(ret.Status)),
				slog.String("to", string(event.Status)))
		default:
			p.logger.Error("apply tracking update failed", slog.String("return", ret.ID), slog.String("error", err.Error()))
		}
	}
}
