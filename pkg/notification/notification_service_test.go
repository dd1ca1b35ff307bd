package notification

import (
	"context"
	"errors"
	"pantrypal/domain"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/reminder"
	"pantrypal/pkg/sweep"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockReminderStore struct {
	mock.Mock
}

func (m *MockReminderStore) RequestPermission(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderStore) ListPending(ctx context.Context) ([]reminder.Record, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]reminder.Record)
	return recs, args.Error(1)
}

func (m *MockReminderStore) CancelAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type sweeperFunc func(ctx context.Context, today time.Time) (sweep.Result, error)

func (f sweeperFunc) RunSweep(ctx context.Context, today time.Time) (sweep.Result, error) {
	return f(ctx, today)
}

func TestGetStatus_SortsPendingByFireTime(t *testing.T) {
	later := reminder.Record{ID: reminder.DailyCheckID, Kind: reminder.KindDailyCheck, FireAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)}
	sooner := reminder.Record{ID: reminder.ExpirationReminderID("a"), ItemID: "a", Kind: reminder.KindExpiration, FireAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	store := new(MockReminderStore)
	store.On("RequestPermission", mock.Anything).Return(true, nil)
	store.On("ListPending", mock.Anything).Return([]reminder.Record{later, sooner}, nil)
	svc := NewNotificationService(store, nil, time.UTC, zap.NewNop())

	res, err := svc.GetStatus(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Authorized)
	require.Len(t, res.Pending, 2)
	assert.Equal(t, sooner.ID, res.Pending[0].ID)
	assert.Equal(t, "expiration", res.Pending[0].Kind)
	assert.Equal(t, reminder.DailyCheckID, res.Pending[1].ID)
}

func TestCheckNow_MapsResult(t *testing.T) {
	var gotToday time.Time
	sweeper := sweeperFunc(func(_ context.Context, today time.Time) (sweep.Result, error) {
		gotToday = today
		return sweep.Result{
			Scheduled: 2,
			Failures:  []string{"expiration_x"},
			Summary: expiry.Summary{
				ExpiringSoon: 3,
				ByUrgency:    map[expiry.Urgency]int{expiry.Critical: 2, expiry.Safe: 5},
			},
		}, nil
	})
	svc := NewNotificationService(new(MockReminderStore), sweeper, time.UTC, zap.NewNop()).(*notificationService)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.CheckNow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fixed, gotToday)
	assert.True(t, res.Authorized)
	assert.Equal(t, 2, res.Scheduled)
	assert.Equal(t, 2, res.Critical)
	assert.Equal(t, 5, res.Safe)
	assert.Equal(t, 3, res.Expiring)
	assert.Equal(t, []string{"expiration_x"}, res.Failures)
}

func TestCheckNow_StorageError(t *testing.T) {
	sweeper := sweeperFunc(func(context.Context, time.Time) (sweep.Result, error) {
		return sweep.Result{}, domain.NewStorageError("list items", errors.New("db down"))
	})
	svc := NewNotificationService(new(MockReminderStore), sweeper, time.UTC, zap.NewNop())

	_, err := svc.CheckNow(context.Background())

	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
}

func TestClearAll(t *testing.T) {
	store := new(MockReminderStore)
	store.On("CancelAll", mock.Anything).Return(int64(4), nil)
	svc := NewNotificationService(store, nil, time.UTC, zap.NewNop())

	n, err := svc.ClearAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
