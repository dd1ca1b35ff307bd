// Package sweep reconciles the inventory against the live reminders.
package sweep

import (
	"context"
	"pantrypal/domain"
	"pantrypal/entities"
	"pantrypal/internal/metrics"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/reminder"
	"time"

	"go.uber.org/zap"
)

type (
	// Store is the inventory snapshot source.
	Store interface {
		ListItems(ctx context.Context) ([]entities.FoodItem, error)
	}

	Result struct {
		Summary   expiry.Summary
		Skipped   bool
		Scheduled int
		Cancelled int
		Unchanged int
		Failures  []string
	}

	Driver struct {
		store   Store
		backend reminder.Backend
		loc     *time.Location
		logger  *zap.Logger
		metrics *metrics.Collector
		now     func() time.Time
	}
)

func NewDriver(store Store, backend reminder.Backend, loc *time.Location, logger *zap.Logger, collector *metrics.Collector) *Driver {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		store:   store,
		backend: backend,
		loc:     loc,
		logger:  logger,
		metrics: collector,
		now:     time.Now,
	}
}

func (d *Driver) Location() *time.Location {
	return d.loc
}

// RunSweep classifies the whole inventory and brings the backend in line with
// the reminder plan for today. Only a store failure aborts the sweep; backend
// failures are collected per reminder in Result.Failures.
func (d *Driver) RunSweep(ctx context.Context, today time.Time) (Result, error) {
	started := time.Now()

	items, err := d.store.ListItems(ctx)
	if err != nil {
		d.metrics.ObserveSweep("error", time.Since(started))
		return Result{}, domain.NewStorageError("list items", err)
	}

	res := Result{Summary: expiry.Summarize(items, today, d.loc)}

	granted, err := d.backend.RequestPermission(ctx)
	if err != nil {
		d.metrics.ObserveSweep("error", time.Since(started))
		return res, domain.NewBackendError("request permission", err)
	}
	if !granted {
		res.Skipped = true
		d.metrics.ObserveSweep("skipped", time.Since(started))
		d.logger.Debug("notifications not permitted, sweep skipped scheduling", zap.Int("items", len(items)))
		return res, nil
	}

	existing, err := d.backend.ListPending(ctx)
	if err != nil {
		d.metrics.ObserveSweep("error", time.Since(started))
		return res, domain.NewBackendError("list pending", err)
	}

	d.ensureDailyCheck(ctx, existing, today, &res)

	plan := reminder.BuildPlan(items, existing, today, d.loc)
	res.Unchanged = plan.Unchanged

	for _, id := range plan.ToCancel {
		if err := d.backend.Cancel(ctx, id); err != nil {
			d.fail(&res, "cancel", id, err)
			continue
		}
		res.Cancelled++
	}
	for _, rec := range plan.ToSchedule {
		if err := d.backend.Schedule(ctx, rec); err != nil {
			d.fail(&res, "schedule", rec.ID, err)
			continue
		}
		res.Scheduled++
	}

	d.metrics.Scheduled(res.Scheduled)
	d.metrics.Cancelled(res.Cancelled)
	outcome := "ok"
	if len(res.Failures) > 0 {
		outcome = "partial"
	}
	d.metrics.ObserveSweep(outcome, time.Since(started))

	d.logger.Info("reminder sweep finished",
		zap.Int("items", len(items)),
		zap.Int("scheduled", res.Scheduled),
		zap.Int("cancelled", res.Cancelled),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("failures", len(res.Failures)),
	)

	return res, nil
}

// ItemDeleted cancels the item's reminder whether or not one exists and
// whether or not notifications are permitted.
func (d *Driver) ItemDeleted(ctx context.Context, itemID string) error {
	id := reminder.ExpirationReminderID(itemID)
	if err := d.backend.Cancel(ctx, id); err != nil {
		d.metrics.Failure("cancel")
		d.logger.Error("failed to cancel reminder for deleted item",
			zap.String("item_id", itemID),
			zap.String("reminder_id", id),
			zap.Error(err),
		)
		return domain.NewBackendError("cancel", err)
	}
	d.metrics.Cancelled(1)
	return nil
}

// ItemChanged re-runs the sweep after an item was created or updated.
func (d *Driver) ItemChanged(ctx context.Context) (Result, error) {
	return d.RunSweep(ctx, d.now().In(d.loc))
}

func (d *Driver) ensureDailyCheck(ctx context.Context, existing []reminder.Record, today time.Time, res *Result) {
	for _, rec := range existing {
		if rec.ID == reminder.DailyCheckID {
			return
		}
	}
	if err := d.backend.Schedule(ctx, reminder.DailyCheckRecord(today, d.loc)); err != nil {
		d.fail(res, "schedule", reminder.DailyCheckID, err)
	}
}

func (d *Driver) fail(res *Result, op, reminderID string, err error) {
	res.Failures = append(res.Failures, reminderID)
	d.metrics.Failure(op)

	fields := []zap.Field{zap.String("op", op), zap.String("reminder_id", reminderID), zap.Error(err)}
	if itemID, ok := reminder.ItemIDFromReminderID(reminderID); ok {
		fields = append(fields, zap.String("item_id", itemID))
	}
	d.logger.Error("reminder backend call failed", fields...)
}
