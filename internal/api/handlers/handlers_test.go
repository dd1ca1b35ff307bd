package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantrypal/domain"
	"pantrypal/internal/api/presenters"
	"pantrypal/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.FoodItemResponse), args.Error(1)
}

func (m *MockFoodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.FoodItemResponse), args.Error(1)
}

func (m *MockFoodService) DeleteFoodItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFoodService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.FoodItemResponse), args.Error(1)
}

func (m *MockFoodService) GetInventory(ctx context.Context, query domain.ListFoodItemsQuery) (domain.InventoryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(domain.InventoryResponse), args.Error(1)
}

func (m *MockFoodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStatsResponse), args.Error(1)
}

func (m *MockFoodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.FoodItemResponse), args.Error(1)
}

type stubProductService struct {
	res domain.ProductResponse
	err error
}

func (s stubProductService) Lookup(context.Context, string) (domain.ProductResponse, error) {
	return s.res, s.err
}

type stubNotificationService struct {
	status  domain.ReminderStatusResponse
	sweep   domain.SweepResponse
	cleared int64
	err     error
}

func (s stubNotificationService) GetStatus(context.Context) (domain.ReminderStatusResponse, error) {
	return s.status, s.err
}

func (s stubNotificationService) CheckNow(context.Context) (domain.SweepResponse, error) {
	return s.sweep, s.err
}

func (s stubNotificationService) ClearAll(context.Context) (int64, error) {
	return s.cleared, s.err
}

func decode(t *testing.T, resp *http.Response) presenters.Response {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out presenters.Response
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newFoodApp(svc *MockFoodService) *fiber.App {
	app := fiber.New()
	h := NewFoodHandler(svc, utils.NewValidator())
	app.Post("/food-items", h.AddFoodItem)
	app.Get("/food-items", h.GetFoodItems)
	app.Get("/food-items/:id", h.GetFoodItemDetails)
	app.Delete("/food-items/:id", h.DeleteFoodItem)
	return app
}

func TestAddFoodItem_Created(t *testing.T) {
	svc := new(MockFoodService)
	req := domain.AddFoodItemRequest{
		Name:            "Milk",
		Quantity:        "1 gallon",
		ExpirationDate:  "2024-03-15",
		StorageLocation: "Fridge",
	}
	svc.On("AddFoodItem", mock.Anything, req).
		Return(domain.FoodItemResponse{ID: "abc", Name: "Milk", Urgency: "Warning"}, nil)

	resp, err := newFoodApp(svc).Test(jsonRequest(http.MethodPost, "/food-items",
		`{"name":"Milk","quantity":"1 gallon","expiration_date":"2024-03-15","storage_location":"Fridge"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode(t, resp)
	assert.True(t, out.Status)
	assert.Equal(t, domain.MessageSuccessAddFoodItem, out.Message)
	svc.AssertExpectations(t)
}

func TestAddFoodItem_ValidationMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"quantity":"1","expiration_date":"2024-03-15","storage_location":"Fridge"}`, domain.MessageEnterItemName},
		{"missing quantity", `{"name":"Milk","expiration_date":"2024-03-15","storage_location":"Fridge"}`, domain.MessageEnterQuantity},
		{"bad location", `{"name":"Milk","quantity":"1","expiration_date":"2024-03-15","storage_location":"Garage"}`, domain.MessageInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockFoodService)
			resp, err := newFoodApp(svc).Test(jsonRequest(http.MethodPost, "/food-items", tt.body))
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			out := decode(t, resp)
			assert.False(t, out.Status)
			assert.Equal(t, tt.want, out.Error)
			svc.AssertNotCalled(t, "AddFoodItem", mock.Anything, mock.Anything)
		})
	}
}

func TestAddFoodItem_ServiceValidationIsBadRequest(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("AddFoodItem", mock.Anything, mock.Anything).
		Return(domain.FoodItemResponse{}, domain.NewValidationError(domain.MessageExpiryDateInPast))

	resp, err := newFoodApp(svc).Test(jsonRequest(http.MethodPost, "/food-items",
		`{"name":"Milk","quantity":"1","expiration_date":"2020-01-01","storage_location":"Fridge"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.MessageExpiryDateInPast, decode(t, resp).Error)
}

func TestGetFoodItems_PassesFilters(t *testing.T) {
	svc := new(MockFoodService)
	query := domain.ListFoodItemsQuery{Location: "Fridge", Urgency: "Critical"}
	svc.On("GetInventory", mock.Anything, query).Return(domain.InventoryResponse{Total: 2}, nil)

	resp, err := newFoodApp(svc).Test(httptest.NewRequest(http.MethodGet, "/food-items?location=Fridge&urgency=Critical", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGetFoodItemDetails_NotFound(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("GetFoodItemByID", mock.Anything, "missing").Return(domain.FoodItemResponse{}, domain.ErrFoodItemNotFound)

	resp, err := newFoodApp(svc).Test(httptest.NewRequest(http.MethodGet, "/food-items/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteFoodItem_OK(t *testing.T) {
	svc := new(MockFoodService)
	svc.On("DeleteFoodItem", mock.Anything, "abc").Return(nil)

	resp, err := newFoodApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/food-items/abc", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.MessageSuccessDeleteFoodItem, decode(t, resp).Message)
}

func TestLookupProduct(t *testing.T) {
	newApp := func(svc stubProductService) *fiber.App {
		app := fiber.New()
		app.Get("/products/:barcode", NewProductHandler(svc, utils.NewValidator()).LookupProduct)
		return app
	}

	t.Run("found", func(t *testing.T) {
		app := newApp(stubProductService{res: domain.ProductResponse{Barcode: "3017620422003", Name: "Nutella"}})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/3017620422003", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("malformed barcode", func(t *testing.T) {
		app := newApp(stubProductService{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, domain.MessageInvalidBarcode, decode(t, resp).Error)
	})

	t.Run("not found", func(t *testing.T) {
		app := newApp(stubProductService{err: domain.NewNotFoundError(domain.MessageProductNotFound)})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/00000000", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, domain.MessageProductNotFound, decode(t, resp).Error)
	})

	t.Run("upstream down", func(t *testing.T) {
		app := newApp(stubProductService{err: domain.NewNetworkError("lookup failed", io.ErrUnexpectedEOF)})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/12345678", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})
}

func TestReminderHandler(t *testing.T) {
	svc := stubNotificationService{
		status:  domain.ReminderStatusResponse{Authorized: true},
		sweep:   domain.SweepResponse{Authorized: true, Scheduled: 2},
		cleared: 3,
	}
	app := fiber.New()
	h := NewReminderHandler(svc)
	app.Get("/reminders", h.GetReminders)
	app.Post("/reminders/sweep", h.RunSweep)
	app.Delete("/reminders", h.ClearReminders)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/reminders/sweep", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp).Data.(map[string]any)
	assert.EqualValues(t, 2, data["scheduled"])

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/reminders", nil))
	require.NoError(t, err)
	data = decode(t, resp).Data.(map[string]any)
	assert.EqualValues(t, 3, data["cleared"])
}

func TestReminderHandler_BackendError(t *testing.T) {
	app := fiber.New()
	app.Get("/reminders", NewReminderHandler(stubNotificationService{
		err: domain.NewBackendError("list pending", io.EOF),
	}).GetReminders)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reminders", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
