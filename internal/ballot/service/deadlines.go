package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/ballot/internal/ballot/domain"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
)

const (
	DefaultDeadlineSoonWindow    = 24 * time.Hour
	DefaultDeadlineWatchInterval = 5 * time.Minute
)

// DeadlineWatchService periodically announces active proposals whose voting
// deadline is close. It never changes a proposal's status; expiry happens
// when proposals are read.
type DeadlineWatchService struct {
	Store         store.Store
	Notifications *NotificationService
	Logger        *slog.Logger
	Now           func() time.Time

	Interval time.Duration
	Window   time.Duration

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewDeadlineWatchService creates the watcher. notifications must not be nil;
// the watcher emits through it and shares its clock. Non-positive interval and
// window fall back to DefaultDeadlineWatchInterval and DefaultDeadlineSoonWindow.
func NewDeadlineWatchService(
	st store.Store,
	notifications *NotificationService,
	logger *slog.Logger,
	interval, window time.Duration,
) *DeadlineWatchService {
	if notifications == nil {
		panic("service: NewDeadlineWatchService requires a NotificationService")
	}
	if interval <= 0 {
		interval = DefaultDeadlineWatchInterval
	}
	if window <= 0 {
		window = DefaultDeadlineSoonWindow
	}
	return &DeadlineWatchService{
		Store:         st,
		Notifications: notifications,
		Logger:        logger,
		Now:           notifications.Now,
		Interval:      interval,
		Window:        window,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start runs a sweep immediately and then on every tick until Stop. A watch
// runs at most once.
func (s *DeadlineWatchService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("deadline watch started",
		slog.Duration("interval", s.Interval),
		slog.Duration("window", s.Window),
	)
}

// Stop blocks until an in-progress sweep has finished. Stopping a watch that
// was never started does nothing.
func (s *DeadlineWatchService) Stop() {
	if !s.started.Load() {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("deadline watch stopped")
	})
}

func (s *DeadlineWatchService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweepAndLog()
	for {
		select {
		case <-ticker.C:
			s.sweepAndLog()
		case <-s.stopCh:
			return
		}
	}
}

func (s *DeadlineWatchService) sweepAndLog() {
	n, err := s.Sweep(context.Background())
	if err != nil {
		s.Logger.Error("deadline sweep failed", slog.Any("error", err))
		return
	}
	s.Logger.Debug("deadline sweep completed", slog.Int("notified", n))
}

// Sweep emits one deadline_soon notification for every active proposal
// whose deadline falls within Window and that has not been announced yet.
// It returns how many were emitted.
func (s *DeadlineWatchService) Sweep(ctx context.Context) (int, error) {
	at := now(s.Now)

	var notes []domain.Notification
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		proposals, err := tx.Proposals().ListProposals(ctx)
		if err != nil {
			return err
		}
		for _, p := range proposals {
			if p.Status != domain.StatusActive || p.Deadline.Before(at) || p.Deadline.Sub(at) > s.Window {
				continue
			}
			seen, err := tx.Notifications().ExistsNotification(ctx, domain.NotificationDeadlineSoon, p.ID)
			if err != nil {
				return err
			}
			if seen {
				continue
			}
			n, err := s.Notifications.Emit(ctx, tx, domain.NotificationDeadlineSoon,
				fmt.Sprintf("Proposal '%s' is nearing its deadline.", p.Title),
				domain.Link(p.ID),
			)
			if err != nil {
				return err
			}
			notes = append(notes, n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.Notifications.Publish(ctx, notes...)
	for _, n := range notes {
		s.Logger.Info("deadline approaching", slog.Int64("proposal_id", *n.LinkID))
	}
	return len(notes), nil
}
