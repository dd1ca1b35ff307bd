package domain

var (
	MessageSuccessLookupProduct = "product found"
	MessageFailedLookupProduct  = "failed to look up product"
	MessageProductNotFound      = "Product not found"
	MessageInvalidBarcode       = "Barcode must contain 8 to 14 digits"
)

type (
	LookupProductRequest struct {
		Barcode string `params:"barcode" validate:"required,numeric,min=8,max=14"`
	}

	// ProductResponse carries the fields an add-item form can prefill.
	ProductResponse struct {
		Barcode  string `json:"barcode"`
		Name     string `json:"name,omitempty"`
		Quantity string `json:"quantity,omitempty"`
		ImageURL string `json:"image_url,omitempty"`
	}
)
