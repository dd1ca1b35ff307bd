// Package product looks up packaged food by barcode in Open Food Facts.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"pantrypal/domain"
	"pantrypal/internal/utils/breaker"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

type (
	ProductService interface {
		Lookup(ctx context.Context, barcode string) (domain.ProductResponse, error)
	}

	productInfo struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		Quantity    string `json:"quantity"`
		ImageURL    string `json:"image_url"`
	}

	openFoodFactsResponse struct {
		Status        int          `json:"status"`
		StatusVerbose string       `json:"status_verbose"`
		Product       *productInfo `json:"product"`
	}

	productService struct {
		baseURL string
		client  *http.Client
		breaker *gobreaker.CircuitBreaker
		logger  *zap.Logger
	}
)

func NewProductService(baseURL string, client *http.Client, logger *zap.Logger) ProductService {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		breaker: breaker.New(breaker.DefaultConfig("open-food-facts"), logger),
		logger:  logger,
	}
}

// Lookup makes a single attempt. status 0 from the catalog means the barcode
// is unknown.
func (s *productService) Lookup(ctx context.Context, barcode string) (domain.ProductResponse, error) {
	return breaker.Execute(s.breaker, func() (domain.ProductResponse, error) {
		return s.lookup(ctx, barcode)
	})
}

func (s *productService) lookup(ctx context.Context, barcode string) (domain.ProductResponse, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.ProductResponse{}, domain.NewNetworkError("invalid product request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ProductResponse{}, domain.NewNetworkError("product lookup failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ProductResponse{}, domain.NewNetworkError(
			fmt.Sprintf("product lookup returned HTTP %d", resp.StatusCode), nil)
	}

	var body openFoodFactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ProductResponse{}, domain.NewParseError("failed to parse product data", err)
	}

	if body.Status == 0 || body.Product == nil {
		s.logger.Debug("barcode not in catalog", zap.String("barcode", barcode))
		return domain.ProductResponse{}, domain.NewNotFoundError(domain.MessageProductNotFound)
	}

	return domain.ProductResponse{
		Barcode:  barcode,
		Name:     productName(body.Product),
		Quantity: body.Product.Quantity,
		ImageURL: body.Product.ImageURL,
	}, nil
}

// productName prefers the product name and falls back to the brand.
func productName(p *productInfo) string {
	if p.ProductName != "" {
		return p.ProductName
	}
	return p.Brands
}
