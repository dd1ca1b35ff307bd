package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pantrypal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/5449000000996.json", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_Found(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":1,"product":{"product_name":"Cola","brands":"Acme","quantity":"330 ml","image_url":"https://img/cola.jpg"}}`)
	svc := NewProductService(srv.URL, srv.Client(), zap.NewNop())

	res, err := svc.Lookup(context.Background(), "5449000000996")

	require.NoError(t, err)
	assert.Equal(t, domain.ProductResponse{
		Barcode:  "5449000000996",
		Name:     "Cola",
		Quantity: "330 ml",
		ImageURL: "https://img/cola.jpg",
	}, res)
}

func TestLookup_NameFallsBackToBrand(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":1,"product":{"product_name":"","brands":"Acme"}}`)
	svc := NewProductService(srv.URL, srv.Client(), zap.NewNop())

	res, err := svc.Lookup(context.Background(), "5449000000996")

	require.NoError(t, err)
	assert.Equal(t, "Acme", res.Name)
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   domain.ErrorKind
	}{
		{"unknown barcode", http.StatusOK, `{"status":0,"status_verbose":"product not found"}`, domain.KindNotFound},
		{"server error", http.StatusInternalServerError, `oops`, domain.KindNetwork},
		{"garbage body", http.StatusOK, `<html>`, domain.KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body)
			svc := NewProductService(srv.URL, srv.Client(), zap.NewNop())

			_, err := svc.Lookup(context.Background(), "5449000000996")

			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

func TestLookup_NotFoundMessage(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":0}`)
	svc := NewProductService(srv.URL, srv.Client(), zap.NewNop())

	_, err := svc.Lookup(context.Background(), "5449000000996")

	assert.Equal(t, "Product not found", domain.UserMessage(err))
}

func TestLookup_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	svc := NewProductService(url, nil, zap.NewNop())

	_, err := svc.Lookup(context.Background(), "5449000000996")

	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
	assert.Equal(t, "Network error, please try again", domain.UserMessage(err))
}
