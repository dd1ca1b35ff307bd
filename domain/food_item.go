package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	MessageEnterItemName       = "Please enter an item name"
	MessageEnterQuantity       = "Please enter a quantity"
	MessageInvalidExpiryDate   = "Please enter the expiration date as YYYY-MM-DD"
	MessageExpiryDateInPast    = "Expiration date must not be in the past"
	MessageInvalidLocation     = "Storage location must be Pantry, Fridge or Freezer"
	MessageInvalidUrgencyQuery = "Urgency filter must be Expired, Critical, Warning, Caution or Safe"

	ErrFoodItemNotFound   = errors.New("food item not found")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrImageUploadOff     = errors.New("photo upload is not configured")
)

type (
	AddFoodItemRequest struct {
		Name            string `json:"name" validate:"required"`
		Quantity        string `json:"quantity" validate:"required"`
		ExpirationDate  string `json:"expiration_date" validate:"required"`
		StorageLocation string `json:"storage_location" validate:"required,storage_location"`
	}

	// UpdateFoodItemRequest replaces every mutable field of an item.
	UpdateFoodItemRequest struct {
		Name            string `json:"name" validate:"required"`
		Quantity        string `json:"quantity" validate:"required"`
		ExpirationDate  string `json:"expiration_date" validate:"required"`
		StorageLocation string `json:"storage_location" validate:"required,storage_location"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ListFoodItemsQuery struct {
		Location string `query:"location" validate:"omitempty,storage_location"`
		Urgency  string `query:"urgency"`
	}

	FoodItemResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Quantity        string    `json:"quantity"`
		ExpirationDate  string    `json:"expiration_date"`
		StorageLocation string    `json:"storage_location"`
		ImageURL        string    `json:"image_url,omitempty"`
		DaysUntilExpiry int       `json:"days_until_expiry"`
		Urgency         string    `json:"urgency"`
		ExpiryLabel     string    `json:"expiry_label"`
		CreatedAt       time.Time `json:"created_at"`
	}

	LocationGroup struct {
		Location string             `json:"location"`
		Items    []FoodItemResponse `json:"items"`
	}

	InventoryResponse struct {
		Locations []LocationGroup `json:"locations"`
		Total     int             `json:"total"`
	}

	DashboardStatsResponse struct {
		TotalItems        int                `json:"total_items"`
		ExpiringSoonItems int                `json:"expiring_soon_items"`
		StorageAreas      int                `json:"storage_areas"`
		ByUrgency         map[string]int     `json:"by_urgency"`
		ByLocation        map[string]int     `json:"by_location"`
		RecentItems       []FoodItemResponse `json:"recent_items"`
	}
)
