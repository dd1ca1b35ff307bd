package reminder

import (
	"strings"
)

type Kind string

const (
	KindExpiration Kind = "expiration"
	KindDailyCheck Kind = "daily_check"
)

const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const (
	expirationPrefix = "expiration_"
	// DailyCheckID identifies the single repeating daily check.
	DailyCheckID = "dailyExpirationCheck"
)

// ExpirationReminderID is the only way reminder ids for items are built. Schedule
// and cancel paths both call it so they always target the same record.
func ExpirationReminderID(itemID string) string {
	return expirationPrefix + itemID
}

// ItemIDFromReminderID reverses ExpirationReminderID.
func ItemIDFromReminderID(id string) (string, bool) {
	if !strings.HasPrefix(id, expirationPrefix) {
		return "", false
	}
	return strings.TrimPrefix(id, expirationPrefix), true
}
