package handlers

import (
	"pantrypal/domain"
	"pantrypal/internal/api/presenters"
	"pantrypal/pkg/product"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		LookupProduct(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		validator:      validator,
	}
}

func (h *productHandler) LookupProduct(c *fiber.Ctx) error {
	req := domain.LookupProductRequest{Barcode: c.Params("barcode")}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLookupProduct, toValidationError(err))
	}

	res, err := h.productService.Lookup(c.Context(), req.Barcode)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedLookupProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLookupProduct)
}
