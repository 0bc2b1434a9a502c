// Package reminder periodically scans every owner's unpaid bills and hands
// the ones that are overdue or due soon to a Notifier.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
)

const scanConcurrency = 4

// Source lists the bills a scan looks at. storage.Store satisfies it.
type Source interface {
	ListOwners(ctx context.Context) ([]string, error)
	ListUnpaidBills(ctx context.Context, ownerID string) ([]models.Bill, error)
}

// Reminder is what one owner is told about.
type Reminder struct {
	OwnerID string
	Overdue []models.Bill
	DueSoon []models.Bill
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, r Reminder) error {
	for _, b := range r.Overdue {
		slog.InfoContext(ctx, "Bill overdue", "owner_id", r.OwnerID, "bill_id", b.ID,
			"biller", b.BillerName(), "due_date", models.FormatDate(b.DueDate), "balance", b.Balance.String())
	}
	for _, b := range r.DueSoon {
		slog.InfoContext(ctx, "Bill due soon", "owner_id", r.OwnerID, "bill_id", b.ID,
			"biller", b.BillerName(), "due_date", models.FormatDate(b.DueDate), "balance", b.Balance.String())
	}
	return nil
}

// Scheduler runs reminder scans on a cron schedule.
type Scheduler struct {
	source   Source
	notifier Notifier
	metrics  *metrics.Metrics
	window   int
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewScheduler creates a Scheduler. windowDays is how far ahead of today a
// due date counts as "due soon".
func NewScheduler(source Source, notifier Notifier, m *metrics.Metrics, windowDays int) *Scheduler {
	return &Scheduler{
		source:   source,
		notifier: notifier,
		metrics:  m,
		window:   windowDays,
		now:      time.Now,
	}
}

// Start schedules Run on spec, a standard five-field cron expression. Each
// run is bounded by ctx.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("reminder scheduler already started")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		if err := s.Run(ctx); err != nil {
			slog.Error("Reminder scan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	slog.Info("Reminder scheduler started", "schedule", spec, "window_days", s.window)
	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	slog.Info("Reminder scheduler stopped")
}

// Run scans every owner once. Owners are scanned concurrently; the first
// failure cancels the rest. Gauges are only updated after a full scan.
func (s *Scheduler) Run(ctx context.Context) error {
	owners, err := s.source.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}

	today := models.Today(s.now())
	var (
		mu               sync.Mutex
		dueSoon, overdue int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)
	for _, owner := range owners {
		owner := owner
		g.Go(func() error {
			bills, err := s.source.ListUnpaidBills(gctx, owner)
			if err != nil {
				return fmt.Errorf("failed to list bills for %s: %w", owner, err)
			}
			r := Classify(owner, bills, today, s.window)

			mu.Lock()
			dueSoon += len(r.DueSoon)
			overdue += len(r.Overdue)
			mu.Unlock()

			if len(r.Overdue) == 0 && len(r.DueSoon) == 0 {
				return nil
			}
			if err := s.notifier.Notify(gctx, r); err != nil {
				return fmt.Errorf("failed to notify %s: %w", owner, err)
			}
			s.metrics.ReminderSent()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.metrics.SetDueCounts(dueSoon, overdue)
	slog.Info("Reminder scan complete", "owners", len(owners), "due_soon", dueSoon, "overdue", overdue)
	return nil
}

// Classify splits bills into overdue (due before today) and due soon (due
// today through today+windowDays). Paid bills are ignored.
func Classify(ownerID string, bills []models.Bill, today time.Time, windowDays int) Reminder {
	r := Reminder{OwnerID: ownerID}
	horizon := today.AddDate(0, 0, windowDays)
	for _, b := range bills {
		if b.Status == models.StatusPaid {
			continue
		}
		switch {
		case b.DueDate.Before(today):
			r.Overdue = append(r.Overdue, b)
		case !b.DueDate.After(horizon):
			r.DueSoon = append(r.DueSoon, b)
		}
	}
	return r
}
