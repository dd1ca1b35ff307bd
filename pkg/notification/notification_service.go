// Package notification backs the reminder settings screen: permission state,
// the pending list, clearing it, and a manual check.
package notification

import (
	"context"
	"pantrypal/domain"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/reminder"
	"pantrypal/pkg/sweep"
	"sort"
	"time"

	"go.uber.org/zap"
)

type (
	NotificationService interface {
		GetStatus(ctx context.Context) (domain.ReminderStatusResponse, error)
		CheckNow(ctx context.Context) (domain.SweepResponse, error)
		ClearAll(ctx context.Context) (int64, error)
	}

	// ReminderStore is what the settings screen needs from the reminder backend.
	ReminderStore interface {
		RequestPermission(ctx context.Context) (bool, error)
		ListPending(ctx context.Context) ([]reminder.Record, error)
		CancelAll(ctx context.Context) (int64, error)
	}

	Sweeper interface {
		RunSweep(ctx context.Context, today time.Time) (sweep.Result, error)
	}

	notificationService struct {
		store   ReminderStore
		sweeper Sweeper
		loc     *time.Location
		logger  *zap.Logger
		now     func() time.Time
	}
)

func NewNotificationService(store ReminderStore, sweeper Sweeper, loc *time.Location, logger *zap.Logger) NotificationService {
	return &notificationService{
		store:   store,
		sweeper: sweeper,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *notificationService) GetStatus(ctx context.Context) (domain.ReminderStatusResponse, error) {
	granted, err := s.store.RequestPermission(ctx)
	if err != nil {
		return domain.ReminderStatusResponse{}, err
	}

	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return domain.ReminderStatusResponse{}, err
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].FireAt.Equal(pending[j].FireAt) {
			return pending[i].FireAt.Before(pending[j].FireAt)
		}
		return pending[i].ID < pending[j].ID
	})

	res := domain.ReminderStatusResponse{
		Authorized: granted,
		Pending:    make([]domain.ReminderResponse, 0, len(pending)),
	}
	for _, rec := range pending {
		res.Pending = append(res.Pending, domain.ReminderResponse{
			ID:           rec.ID,
			ItemID:       rec.ItemID,
			Kind:         string(rec.Kind),
			FireAt:       rec.FireAt.In(s.loc),
			Title:        rec.Title,
			Body:         rec.Body,
			RepeatsDaily: rec.RepeatsDaily,
		})
	}
	return res, nil
}

func (s *notificationService) CheckNow(ctx context.Context) (domain.SweepResponse, error) {
	result, err := s.sweeper.RunSweep(ctx, s.now().In(s.loc))
	if err != nil {
		return domain.SweepResponse{}, err
	}
	return ToSweepResponse(result), nil
}

// ClearAll cancels every pending reminder, the daily check included. The next
// sweep re-creates whatever is still due.
func (s *notificationService) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.store.CancelAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("pending reminders cleared", zap.Int64("count", n))
	return n, nil
}

func ToSweepResponse(result sweep.Result) domain.SweepResponse {
	return domain.SweepResponse{
		Authorized: !result.Skipped,
		Scheduled:  result.Scheduled,
		Cancelled:  result.Cancelled,
		Unchanged:  result.Unchanged,
		Failures:   result.Failures,
		Expired:    result.Summary.ByUrgency[expiry.Expired],
		Critical:   result.Summary.ByUrgency[expiry.Critical],
		Warning:    result.Summary.ByUrgency[expiry.Warning],
		Safe:       result.Summary.ByUrgency[expiry.Safe],
		Expiring:   result.Summary.ExpiringSoon,
	}
}
