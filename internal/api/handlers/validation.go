package handlers

import (
	"pantrypal/domain"
	"pantrypal/internal/utils"
)

var fieldMessages = map[string]string{
	"name":             domain.MessageEnterItemName,
	"quantity":         domain.MessageEnterQuantity,
	"expiration_date":  domain.MessageInvalidExpiryDate,
	"storage_location": domain.MessageInvalidLocation,
	"location":         domain.MessageInvalidLocation,
	"Barcode":          domain.MessageInvalidBarcode,
	"item_ids":         domain.ErrFoodItemNotFound.Error(),
	"ingredients":      domain.MessageSelectIngredients,
	"food_id":          domain.ErrFoodItemNotFound.Error(),
	"image":            domain.ErrInvalidImageFormat.Error(),
}

// toValidationError turns a validator failure into a ValidationError whose
// message names the first bad field in words a user understands.
func toValidationError(err error) error {
	if msg, ok := fieldMessages[utils.FirstInvalidField(err)]; ok {
		return domain.NewValidationError(msg)
	}
	return domain.NewValidationError(domain.MessageFailedBodyRequest)
}
