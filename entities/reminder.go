package entities

import (
	"time"
)

// Reminder is the persisted form of a scheduled alert. ID is derived from the
// source item, never generated, so rescheduling overwrites the same row.
type Reminder struct {
	ID           string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	ItemID       string     `gorm:"type:varchar(64);index" json:"item_id,omitempty"`
	Kind         string     `gorm:"type:varchar(32);not null" json:"kind"`
	FireAt       time.Time  `gorm:"type:timestamp with time zone;index" json:"fire_at"`
	Title        string     `json:"title"`
	Body         string     `gorm:"type:text" json:"body"`
	RepeatsDaily bool       `json:"repeats_daily"`
	Status       string     `gorm:"type:varchar(16);index" json:"status"` // "pending", "delivered", "cancelled"
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`

	Timestamp
}

func (Reminder) TableName() string {
	return "reminders"
}
