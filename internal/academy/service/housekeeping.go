package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/store"
)

const expiredPaymentMessage = "The payment request timed out. Please try again."

// HousekeepingService periodically cancels pending payments that were never
// confirmed, so an abandoned phone prompt does not stay pending forever.
type HousekeepingService struct {
	Store   store.Store
	Logger  *slog.Logger
	Metrics *Metrics

	Interval time.Duration

	// MaxPendingAge is how long a payment may stay pending.
	MaxPendingAge time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one minute and a non-positive age to fifteen minutes.
func NewHousekeepingService(
	store store.Store,
	logger *slog.Logger,
	metrics *Metrics,
	interval, maxPendingAge time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxPendingAge <= 0 {
		maxPendingAge = 15 * time.Minute
	}

	return &HousekeepingService{
		Store:         store,
		Logger:        logger,
		Metrics:       metrics,
		Interval:      interval,
		MaxPendingAge: maxPendingAge,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"max_pending_age", s.MaxPendingAge,
	)
}

// Stop blocks until the worker has finished any in-progress run.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup cancels stale pending payments and reports how many it touched.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := time.Now().UTC().Add(-s.MaxPendingAge)

	n, err := s.Store.Payments().ExpirePendingPayments(ctx, cutoff, expiredPaymentMessage)
	if err != nil {
		s.Logger.Error("failed to expire pending payments", "error", err)
		return 0
	}

	s.Metrics.Expired(n)
	if n > 0 {
		s.Logger.Info("expired pending payments", "count", n)
	} else {
		s.Logger.Debug("no stale pending payments")
	}
	return n
}
