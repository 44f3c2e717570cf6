package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_storefront/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestListProducts(t *testing.T) {
	t.Run("Wrapped", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/products", r.URL.Path)
			_, _ = io.WriteString(w, `{"products":[{"id":1,"title":"A","price":10,"category":"a"},{"id":2,"title":"B","price":20,"category":"b"}],"total":2}`)
		})

		products, err := c.ListProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 1, products[0].ID)
		assert.Equal(t, "b", products[1].Category)
	})

	t.Run("BareArray", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[{"id":3,"title":"C","price":5,"category":"c","rating":{"rate":4.1,"count":9}}]`)
		})

		products, err := c.ListProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 3, products[0].ID)
		assert.Equal(t, models.Rating{Rate: 4.1, Count: 9}, products[0].Rating)
	})

	t.Run("ServerError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "down")
		})

		_, err := c.ListProducts(context.Background())
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
		assert.Equal(t, "down", apiErr.Body)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"products":`)
		})

		_, err := c.ListProducts(context.Background())
		require.Error(t, err)
	})
}

func TestGetProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/42", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":42,"title":"Laptop","brand":"Acme","stock":7,"thumbnail":"t.png"}`)
	})

	p, err := c.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "Acme", p.Brand)
	assert.Equal(t, float64(7), p.Stock)
	assert.Equal(t, "t.png", p.DisplayImage())
}

func TestCreateAndUpdateProduct(t *testing.T) {
	payload := models.ProductPayload{
		Title:       "Phone",
		Description: "Nice",
		Price:       99.5,
		Stock:       3,
		Brand:       "Acme",
		Category:    "smartphones",
		Thumbnail:   models.PlaceholderThumbnail,
	}

	var gotMethod, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"id":195,"title":"Phone"}`)
	})

	_, err := c.CreateProduct(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/products/add", gotPath)
	assert.Equal(t, map[string]any{
		"title":       "Phone",
		"description": "Nice",
		"price":       99.5,
		"stock":       float64(3),
		"brand":       "Acme",
		"category":    "smartphones",
		"thumbnail":   models.PlaceholderThumbnail,
	}, gotBody)

	_, err = c.UpdateProduct(context.Background(), 5, payload)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/products/5", gotPath)
	assert.Equal(t, "Phone", gotBody["title"])
}

func TestPing(t *testing.T) {
	up := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"products":[],"total":0}`)
	})
	assert.NoError(t, up.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.Error(t, down.Ping(context.Background()))
}
