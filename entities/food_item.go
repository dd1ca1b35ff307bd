package entities

import (
	"github.com/google/uuid"
	"time"
)

type StorageLocation string

const (
	LocationPantry  StorageLocation = "Pantry"
	LocationFridge  StorageLocation = "Fridge"
	LocationFreezer StorageLocation = "Freezer"
)

// StorageLocations lists every location in display order.
var StorageLocations = []StorageLocation{LocationPantry, LocationFridge, LocationFreezer}

func (l StorageLocation) Valid() bool {
	switch l {
	case LocationPantry, LocationFridge, LocationFreezer:
		return true
	}
	return false
}

type FoodItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Quantity        string          `gorm:"not null" json:"quantity"`
	ExpirationDate  time.Time       `gorm:"type:date;index" json:"expiration_date"`
	StorageLocation StorageLocation `gorm:"type:varchar(16);index" json:"storage_location"`
	ImageURL        string          `json:"image_url,omitempty"`

	Timestamp
}
