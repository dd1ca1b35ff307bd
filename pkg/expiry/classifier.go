// Package expiry classifies food items by how close they are to expiring.
package expiry

import (
	"fmt"
	"pantrypal/entities"
	"time"
)

type Urgency string

const (
	Expired  Urgency = "Expired"
	Critical Urgency = "Critical"
	Warning  Urgency = "Warning"
	// Caution is accepted in filters and payloads; Classify never produces it.
	Caution Urgency = "Caution"
	Safe    Urgency = "Safe"
)

// Urgencies lists every bucket from most to least urgent.
var Urgencies = []Urgency{Expired, Critical, Warning, Caution, Safe}

const (
	CriticalDays     = 3
	WarningDays      = 7
	ExpiringSoonDays = 7
	// StorageAreas is the number of storage locations an inventory is split into.
	StorageAreas = 3
)

func ParseUrgency(s string) (Urgency, bool) {
	for _, u := range Urgencies {
		if string(u) == s {
			return u, true
		}
	}
	return "", false
}

// CalendarDate returns midnight UTC of the civil date t falls on in loc.
// Day arithmetic on these values is immune to daylight-saving shifts.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns local midnight of the day t falls on in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ExpirationDay returns midnight UTC of the expiration date's own calendar day.
func ExpirationDay(expirationDate time.Time) time.Time {
	y, m, d := expirationDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil counts whole calendar days from today to the expiration date.
// The expiration date is a calendar date: its own year, month and day are used
// as stored. today is an instant and is placed on the calendar of loc.
func DaysUntil(expirationDate, today time.Time, loc *time.Location) int {
	exp := ExpirationDay(expirationDate)
	now := CalendarDate(today, loc)
	return int(exp.Sub(now).Hours() / 24)
}

// ClassifyDays maps a day difference to its urgency bucket. First match wins.
func ClassifyDays(days int) Urgency {
	switch {
	case days < 0:
		return Expired
	case days <= CriticalDays:
		return Critical
	case days <= WarningDays:
		return Warning
	default:
		return Safe
	}
}

func Classify(expirationDate, today time.Time, loc *time.Location) Urgency {
	return ClassifyDays(DaysUntil(expirationDate, today, loc))
}

// IsExpiringSoon reports whether an item counts toward the "expiring soon" total.
// Items expiring today or already expired are excluded.
func IsExpiringSoon(days int) bool {
	return days > 0 && days <= ExpiringSoonDays
}

// Label renders a day difference for display.
func Label(days int) string {
	switch {
	case days < 0:
		return "Expired"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

type Summary struct {
	Total        int
	ExpiringSoon int
	StorageAreas int
	ByUrgency    map[Urgency]int
	ByLocation   map[entities.StorageLocation]int
}

func Summarize(items []entities.FoodItem, today time.Time, loc *time.Location) Summary {
	summary := Summary{
		Total:        len(items),
		StorageAreas: StorageAreas,
		ByUrgency:    make(map[Urgency]int, len(Urgencies)),
		ByLocation:   make(map[entities.StorageLocation]int, len(entities.StorageLocations)),
	}
	for _, u := range Urgencies {
		summary.ByUrgency[u] = 0
	}
	for _, l := range entities.StorageLocations {
		summary.ByLocation[l] = 0
	}

	for _, item := range items {
		days := DaysUntil(item.ExpirationDate, today, loc)
		summary.ByUrgency[ClassifyDays(days)]++
		summary.ByLocation[item.StorageLocation]++
		if IsExpiringSoon(days) {
			summary.ExpiringSoon++
		}
	}

	return summary
}
