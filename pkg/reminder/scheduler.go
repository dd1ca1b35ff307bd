package reminder

import (
	"fmt"
	"pantrypal/entities"
	"pantrypal/pkg/expiry"
	"sort"
	"time"
)

const (
	// LeadDays is how many days before expiration the reminder fires.
	LeadDays = 3
	// FireHour is the local wall-clock hour every reminder fires at.
	FireHour = 9

	expirationTitle = "Item Expiring Soon!"
	dailyCheckTitle = "PantryPal Daily Check"
	dailyCheckBody  = "Checking for items expiring soon..."
)

type Record struct {
	ID           string
	ItemID       string
	Kind         Kind
	FireAt       time.Time
	Title        string
	Body         string
	RepeatsDaily bool
}

// Plan is the difference between the reminders that should exist and the ones
// that do. Cancels are applied before schedules.
type Plan struct {
	ToSchedule []Record
	ToCancel   []string
	Unchanged  int
}

func (p Plan) Empty() bool {
	return len(p.ToSchedule) == 0 && len(p.ToCancel) == 0
}

// ExpirationRecord builds the single-shot reminder for item: 09:00 local time,
// LeadDays before the expiration date.
func ExpirationRecord(item entities.FoodItem, loc *time.Location) Record {
	y, m, d := item.ExpirationDate.Date()
	itemID := item.ID.String()
	return Record{
		ID:     ExpirationReminderID(itemID),
		ItemID: itemID,
		Kind:   KindExpiration,
		FireAt: time.Date(y, m, d-LeadDays, FireHour, 0, 0, 0, loc),
		Title:  expirationTitle,
		Body:   fmt.Sprintf("Heads up! Your %s is expiring in %d days.", item.Name, LeadDays),
	}
}

// NextDailyFire returns the first 09:00 in loc strictly after now.
func NextDailyFire(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()
	next := time.Date(y, m, d, FireHour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(y, m, d+1, FireHour, 0, 0, 0, loc)
	}
	return next
}

func DailyCheckRecord(now time.Time, loc *time.Location) Record {
	return Record{
		ID:           DailyCheckID,
		Kind:         KindDailyCheck,
		FireAt:       NextDailyFire(now, loc),
		Title:        dailyCheckTitle,
		Body:         dailyCheckBody,
		RepeatsDaily: true,
	}
}

func isExpirationRecord(r Record) bool {
	if r.Kind == KindExpiration {
		return true
	}
	_, ok := ItemIDFromReminderID(r.ID)
	return ok && r.Kind == ""
}

// BuildPlan reconciles the inventory snapshot against the live reminders.
//
// An item earns a reminder only when it sits exactly LeadDays from expiring on
// today. Reminders are prospective: an item already inside the window when the
// sweep first sees it gets none. The daily check is never part of the plan.
func BuildPlan(items []entities.FoodItem, existing []Record, today time.Time, loc *time.Location) Plan {
	desired := make(map[string]Record)
	for _, item := range items {
		if expiry.DaysUntil(item.ExpirationDate, today, loc) != LeadDays {
			continue
		}
		rec := ExpirationRecord(item, loc)
		desired[rec.ID] = rec
	}

	live := make(map[string]Record)
	for _, rec := range existing {
		if isExpirationRecord(rec) {
			live[rec.ID] = rec
		}
	}

	var plan Plan
	for id, want := range desired {
		have, ok := live[id]
		switch {
		case !ok:
			plan.ToSchedule = append(plan.ToSchedule, want)
		case have.FireAt.Equal(want.FireAt):
			plan.Unchanged++
		default:
			plan.ToCancel = append(plan.ToCancel, id)
			plan.ToSchedule = append(plan.ToSchedule, want)
		}
	}

	for id := range live {
		if _, ok := desired[id]; !ok {
			plan.ToCancel = append(plan.ToCancel, id)
		}
	}

	sort.Slice(plan.ToSchedule, func(i, j int) bool {
		return plan.ToSchedule[i].ID < plan.ToSchedule[j].ID
	})
	sort.Strings(plan.ToCancel)

	return plan
}
