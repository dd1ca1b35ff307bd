package reminder

import (
	"context"
	"pantrypal/internal/metrics"
	"time"

	"go.uber.org/zap"
)

type (
	// DispatchStore is the part of the reminder store the dispatcher polls.
	DispatchStore interface {
		RequestPermission(ctx context.Context) (bool, error)
		Due(ctx context.Context, now time.Time) ([]Record, error)
		MarkDelivered(ctx context.Context, rec Record, at time.Time) error
		Schedule(ctx context.Context, rec Record) error
	}

	// DailyCheckFunc runs when the repeating daily check fires.
	DailyCheckFunc func(ctx context.Context, now time.Time) error

	// Dispatcher fires due reminders. Expiration reminders go to the notifier
	// and are marked delivered; the daily check triggers a sweep and re-arms
	// itself for the next 09:00.
	Dispatcher struct {
		store        DispatchStore
		notifier     Notifier
		onDailyCheck DailyCheckFunc
		loc          *time.Location
		interval     time.Duration
		logger       *zap.Logger
		metrics      *metrics.Collector
		now          func() time.Time
	}
)

func NewDispatcher(
	store DispatchStore,
	notifier Notifier,
	onDailyCheck DailyCheckFunc,
	loc *time.Location,
	interval time.Duration,
	logger *zap.Logger,
	collector *metrics.Collector,
) *Dispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Dispatcher{
		store:        store,
		notifier:     notifier,
		onDailyCheck: onDailyCheck,
		loc:          loc,
		interval:     interval,
		logger:       logger,
		metrics:      collector,
		now:          time.Now,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("reminder dispatcher started", zap.Duration("interval", d.interval))
	for {
		if _, err := d.DispatchDue(ctx); err != nil {
			d.logger.Error("reminder dispatch failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			d.logger.Info("reminder dispatcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// DispatchDue handles every pending reminder whose fire time has passed and
// returns how many were delivered. A failed delivery stays pending for the
// next poll. Without permission nothing is delivered or re-armed; pending
// reminders wait until permission comes back or a sweep cancels them.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	granted, err := d.store.RequestPermission(ctx)
	if err != nil {
		return 0, err
	}
	if !granted {
		return 0, nil
	}

	now := d.now()
	due, err := d.store.Due(ctx, now)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, rec := range due {
		if rec.Kind == KindDailyCheck {
			d.runDailyCheck(ctx, now)
			continue
		}

		if err := d.notifier.Notify(ctx, rec); err != nil {
			d.metrics.Failure("deliver")
			d.logger.Error("failed to deliver reminder",
				zap.String("reminder_id", rec.ID),
				zap.String("item_id", rec.ItemID),
				zap.Error(err),
			)
			continue
		}
		if err := d.store.MarkDelivered(ctx, rec, now); err != nil {
			d.metrics.Failure("mark_delivered")
			d.logger.Error("failed to mark reminder delivered",
				zap.String("reminder_id", rec.ID),
				zap.Error(err),
			)
			continue
		}
		d.metrics.Delivered()
		delivered++
	}

	return delivered, nil
}

func (d *Dispatcher) runDailyCheck(ctx context.Context, now time.Time) {
	if d.onDailyCheck != nil {
		if err := d.onDailyCheck(ctx, now); err != nil {
			d.logger.Error("daily expiration check failed", zap.Error(err))
		}
	}

	if err := d.store.Schedule(ctx, DailyCheckRecord(now, d.loc)); err != nil {
		d.metrics.Failure("schedule")
		d.logger.Error("failed to re-arm daily check", zap.Error(err))
	}
}
