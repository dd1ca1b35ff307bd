package reminder

import (
	"context"
	"errors"
	"pantrypal/domain"
	"pantrypal/entities"
	"time"

	"gorm.io/gorm"
)

type (
	// ReminderRepository is the database-backed Backend. Besides the Backend
	// operations it exposes what the dispatcher and settings screen need.
	ReminderRepository interface {
		Backend
		CancelAll(ctx context.Context) (int64, error)
		Due(ctx context.Context, now time.Time) ([]Record, error)
		MarkDelivered(ctx context.Context, rec Record, at time.Time) error
	}

	reminderRepository struct {
		db      *gorm.DB
		enabled bool
	}
)

// NewReminderRepository returns a backend persisting reminders in db. enabled
// is the permission answer handed to sweeps.
func NewReminderRepository(db *gorm.DB, enabled bool) ReminderRepository {
	return &reminderRepository{db: db, enabled: enabled}
}

func (r *reminderRepository) RequestPermission(ctx context.Context) (bool, error) {
	return r.enabled, nil
}

func (r *reminderRepository) Schedule(ctx context.Context, rec Record) error {
	var existing entities.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", rec.ID).First(&existing).Error
	switch {
	case err == nil:
		// Already fired for this exact slot; scheduling it again would repeat the alert.
		if existing.Status == StatusDelivered && existing.FireAt.Equal(rec.FireAt) {
			return nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return domain.NewBackendError("schedule reminder", err)
	}

	row := toEntity(rec)
	row.Status = StatusPending
	row.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return domain.NewBackendError("schedule reminder", err)
	}
	return nil
}

func (r *reminderRepository) Cancel(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&entities.Reminder{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusCancelled).Error
	if err != nil {
		return domain.NewBackendError("cancel reminder", err)
	}
	return nil
}

func (r *reminderRepository) ListPending(ctx context.Context) ([]Record, error) {
	var rows []entities.Reminder
	if err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("fire_at asc").
		Find(&rows).Error; err != nil {
		return nil, domain.NewBackendError("list pending reminders", err)
	}
	return toRecords(rows), nil
}

func (r *reminderRepository) CancelAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Reminder{}).
		Where("status = ?", StatusPending).
		Update("status", StatusCancelled)
	if res.Error != nil {
		return 0, domain.NewBackendError("cancel all reminders", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *reminderRepository) Due(ctx context.Context, now time.Time) ([]Record, error) {
	var rows []entities.Reminder
	if err := r.db.WithContext(ctx).
		Where("status = ? AND fire_at <= ?", StatusPending, now).
		Order("fire_at asc").
		Find(&rows).Error; err != nil {
		return nil, domain.NewBackendError("list due reminders", err)
	}
	return toRecords(rows), nil
}

// MarkDelivered only matches the exact slot that fired, so a reschedule that
// raced the delivery stays pending.
func (r *reminderRepository) MarkDelivered(ctx context.Context, rec Record, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&entities.Reminder{}).
		Where("id = ? AND status = ? AND fire_at = ?", rec.ID, StatusPending, rec.FireAt).
		Updates(map[string]interface{}{"status": StatusDelivered, "delivered_at": at}).Error
	if err != nil {
		return domain.NewBackendError("mark reminder delivered", err)
	}
	return nil
}

func toEntity(rec Record) entities.Reminder {
	return entities.Reminder{
		ID:           rec.ID,
		ItemID:       rec.ItemID,
		Kind:         string(rec.Kind),
		FireAt:       rec.FireAt,
		Title:        rec.Title,
		Body:         rec.Body,
		RepeatsDaily: rec.RepeatsDaily,
	}
}

func toRecords(rows []entities.Reminder) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			ID:           row.ID,
			ItemID:       row.ItemID,
			Kind:         Kind(row.Kind),
			FireAt:       row.FireAt,
			Title:        row.Title,
			Body:         row.Body,
			RepeatsDaily: row.RepeatsDaily,
		})
	}
	return records
}
