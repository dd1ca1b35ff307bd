package domain

import (
	"time"
)

var (
	MessageSuccessGetReminders   = "reminders retrieved successfully"
	MessageSuccessRunSweep       = "reminder check completed"
	MessageSuccessClearReminders = "pending reminders cleared"

	MessageFailedGetReminders   = "failed to retrieve reminders"
	MessageFailedRunSweep       = "failed to run reminder check"
	MessageFailedClearReminders = "failed to clear reminders"
)

type (
	ReminderResponse struct {
		ID           string    `json:"id"`
		ItemID       string    `json:"item_id,omitempty"`
		Kind         string    `json:"kind"`
		FireAt       time.Time `json:"fire_at"`
		Title        string    `json:"title"`
		Body         string    `json:"body"`
		RepeatsDaily bool      `json:"repeats_daily"`
	}

	ReminderStatusResponse struct {
		Authorized bool               `json:"authorized"`
		Pending    []ReminderResponse `json:"pending"`
	}

	SweepResponse struct {
		Authorized bool     `json:"authorized"`
		Scheduled  int      `json:"scheduled"`
		Cancelled  int      `json:"cancelled"`
		Unchanged  int      `json:"unchanged"`
		Failures   []string `json:"failures,omitempty"`
		Expired    int      `json:"expired"`
		Critical   int      `json:"critical"`
		Warning    int      `json:"warning"`
		Safe       int      `json:"safe"`
		Expiring   int      `json:"expiring_soon"`
	}
)
