package reminder

import (
	"pantrypal/entities"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func itemExpiring(name string, y int, m time.Month, d int) entities.FoodItem {
	return entities.FoodItem{
		ID:              uuid.New(),
		Name:            name,
		Quantity:        "1",
		ExpirationDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StorageLocation: entities.LocationFridge,
	}
}

// apply mimics a backend: cancels drop records, schedules overwrite by id.
func apply(existing []Record, plan Plan) []Record {
	byID := make(map[string]Record)
	for _, r := range existing {
		byID[r.ID] = r
	}
	for _, id := range plan.ToCancel {
		delete(byID, id)
	}
	for _, r := range plan.ToSchedule {
		byID[r.ID] = r
	}
	out := make([]Record, 0, len(byID))
	for _, r := range byID {
		out = append(out, r)
	}
	return out
}

func TestExpirationReminderID_Deterministic(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, ExpirationReminderID(id), ExpirationReminderID(id))
	assert.Equal(t, "expiration_"+id, ExpirationReminderID(id))

	back, ok := ItemIDFromReminderID(ExpirationReminderID(id))
	assert.True(t, ok)
	assert.Equal(t, id, back)

	_, ok = ItemIDFromReminderID(DailyCheckID)
	assert.False(t, ok)
}

func TestBuildPlan_ThreeDaysOutSchedulesAtNine(t *testing.T) {
	milk := itemExpiring("Milk", 2024, 1, 4)

	plan := BuildPlan([]entities.FoodItem{milk}, nil, today, time.UTC)

	require.Len(t, plan.ToSchedule, 1)
	assert.Empty(t, plan.ToCancel)

	rec := plan.ToSchedule[0]
	assert.Equal(t, ExpirationReminderID(milk.ID.String()), rec.ID)
	assert.Equal(t, milk.ID.String(), rec.ItemID)
	assert.Equal(t, KindExpiration, rec.Kind)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), rec.FireAt)
	assert.Equal(t, "Item Expiring Soon!", rec.Title)
	assert.Equal(t, "Heads up! Your Milk is expiring in 3 days.", rec.Body)
	assert.False(t, rec.RepeatsDaily)
}

func TestBuildPlan_OnlyExactlyThreeDays(t *testing.T) {
	items := []entities.FoodItem{
		itemExpiring("rice", 2024, 1, 11),  // 10 days
		itemExpiring("cheese", 2024, 1, 3), // 2 days: window already missed
		itemExpiring("yogurt", 2023, 12, 31),
		itemExpiring("eggs", 2024, 1, 5), // 4 days
	}

	plan := BuildPlan(items, nil, today, time.UTC)

	assert.True(t, plan.Empty())
}

func TestBuildPlan_TwoItemsGetDistinctReminders(t *testing.T) {
	a := itemExpiring("Milk", 2024, 1, 4)
	b := itemExpiring("Spinach", 2024, 1, 4)

	plan := BuildPlan([]entities.FoodItem{a, b}, nil, today, time.UTC)

	require.Len(t, plan.ToSchedule, 2)
	assert.NotEqual(t, plan.ToSchedule[0].ID, plan.ToSchedule[1].ID)
	assert.Less(t, plan.ToSchedule[0].ID, plan.ToSchedule[1].ID)
}

func TestBuildPlan_Idempotent(t *testing.T) {
	items := []entities.FoodItem{
		itemExpiring("Milk", 2024, 1, 4),
		itemExpiring("Rice", 2024, 2, 1),
	}

	first := BuildPlan(items, nil, today, time.UTC)
	require.Len(t, first.ToSchedule, 1)

	existing := apply(nil, first)
	second := BuildPlan(items, existing, today, time.UTC)

	assert.True(t, second.Empty())
	assert.Equal(t, 1, second.Unchanged)
}

func TestBuildPlan_DeletedItemCancelsReminder(t *testing.T) {
	milk := itemExpiring("Milk", 2024, 1, 4)
	existing := apply(nil, BuildPlan([]entities.FoodItem{milk}, nil, today, time.UTC))

	plan := BuildPlan(nil, existing, today, time.UTC)

	assert.Empty(t, plan.ToSchedule)
	assert.Equal(t, []string{ExpirationReminderID(milk.ID.String())}, plan.ToCancel)
}

func TestBuildPlan_EditedOutOfWindowCancels(t *testing.T) {
	milk := itemExpiring("Milk", 2024, 1, 4)
	existing := apply(nil, BuildPlan([]entities.FoodItem{milk}, nil, today, time.UTC))

	milk.ExpirationDate = time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	plan := BuildPlan([]entities.FoodItem{milk}, existing, today, time.UTC)

	assert.Empty(t, plan.ToSchedule)
	assert.Equal(t, []string{ExpirationReminderID(milk.ID.String())}, plan.ToCancel)
}

func TestBuildPlan_DifferentFireTimeReplaces(t *testing.T) {
	milk := itemExpiring("Milk", 2024, 1, 4)
	stale := ExpirationRecord(milk, time.UTC)
	stale.FireAt = time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC)

	plan := BuildPlan([]entities.FoodItem{milk}, []Record{stale}, today, time.UTC)

	assert.Equal(t, []string{stale.ID}, plan.ToCancel)
	require.Len(t, plan.ToSchedule, 1)
	assert.Equal(t, stale.ID, plan.ToSchedule[0].ID)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), plan.ToSchedule[0].FireAt)
}

func TestBuildPlan_LeavesDailyCheckAlone(t *testing.T) {
	daily := DailyCheckRecord(today, time.UTC)

	plan := BuildPlan(nil, []Record{daily}, today, time.UTC)

	assert.True(t, plan.Empty())
}

func TestBuildPlan_UsesLocationForFireTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	milk := itemExpiring("Milk", 2024, 1, 4)
	now := time.Date(2024, 1, 1, 7, 0, 0, 0, loc)

	plan := BuildPlan([]entities.FoodItem{milk}, nil, now, loc)

	require.Len(t, plan.ToSchedule, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, loc), plan.ToSchedule[0].FireAt)
}

func TestNextDailyFire(t *testing.T) {
	loc := time.UTC

	assert.Equal(t,
		time.Date(2024, 1, 1, 9, 0, 0, 0, loc),
		NextDailyFire(time.Date(2024, 1, 1, 8, 59, 0, 0, loc), loc))
	assert.Equal(t,
		time.Date(2024, 1, 2, 9, 0, 0, 0, loc),
		NextDailyFire(time.Date(2024, 1, 1, 9, 0, 0, 0, loc), loc))
	assert.Equal(t,
		time.Date(2024, 1, 1, 9, 0, 0, 0, loc),
		NextDailyFire(time.Date(2023, 12, 31, 22, 0, 0, 0, loc), loc))

	daily := DailyCheckRecord(today, loc)
	assert.Equal(t, DailyCheckID, daily.ID)
	assert.Equal(t, KindDailyCheck, daily.Kind)
	assert.True(t, daily.RepeatsDaily)
}
