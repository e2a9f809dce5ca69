package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopikita/blogshop/internal/api"
	"github.com/kopikita/blogshop/internal/pagination"
	memoryrepo "github.com/kopikita/blogshop/internal/repository/memory"
	"github.com/kopikita/blogshop/internal/service"
	memorystorage "github.com/kopikita/blogshop/internal/storage/memory"
)

type coffeeShopPage struct {
	Shops      []api.CoffeeShopResource `json:"posts"`
	Pagination pagination.Meta          `json:"pagination"`
}

func newCoffeeShopRouter() (chi.Router, *memorystorage.MemoryBackend) {
	blobs := memorystorage.NewMemoryBackend()
	svc := service.NewCoffeeShopService(memoryrepo.NewCoffeeShopRepository(), blobs)
	handler := api.NewCoffeeShopHandler(svc, testBaseURL)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/coffee-shops", handler.Routes())
	})
	return r, blobs
}

func shopFields(name, rating string) map[string]string {
	return map[string]string{
		"name":     name,
		"location": "Jakarta",
		"owner":    "Budi",
		"rating":   rating,
	}
}

func createTestShop(t *testing.T, router chi.Router, name string, withImage bool) api.CoffeeShopResource {
	t.Helper()

	imageName := ""
	if withImage {
		imageName = "shop.png"
	}
	body, contentType := postForm(t, shopFields(name, "4"), imageName)

	rec := doRequest(router, http.MethodPost, "/api/coffee-shops", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var shop api.CoffeeShopResource
	require.NoError(t, json.Unmarshal(env.Data, &shop))
	return shop
}

func TestCoffeeShopHandler_Create(t *testing.T) {
	router, blobs := newCoffeeShopRouter()

	shop := createTestShop(t, router, "Kopi Kita", true)

	assert.Equal(t, int64(1), shop.ID)
	assert.Equal(t, "Kopi Kita", shop.Name)
	assert.Equal(t, 4, shop.Rating)
	assert.True(t, strings.HasPrefix(shop.Image, testBaseURL+"/storage/coffeeshops/"), shop.Image)
	assert.Len(t, blobs.Keys(), 1)
}

func TestCoffeeShopHandler_CreateWithoutImage(t *testing.T) {
	router, blobs := newCoffeeShopRouter()

	shop := createTestShop(t, router, "Kopi Polos", false)

	assert.Empty(t, shop.Image)
	assert.Empty(t, blobs.Keys())
}

func TestCoffeeShopHandler_CreateRatingOutOfRange(t *testing.T) {
	router, _ := newCoffeeShopRouter()

	body, contentType := postForm(t, shopFields("Kopi Kita", "6"), "")

	rec := doRequest(router, http.MethodPost, "/api/coffee-shops", body, contentType)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "rating")

	// Nothing was stored
	rec = doRequest(router, http.MethodGet, "/api/coffee-shops", nil, "")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var page coffeeShopPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestCoffeeShopHandler_CreateRatingNotANumber(t *testing.T) {
	router, _ := newCoffeeShopRouter()

	body, contentType := postForm(t, shopFields("Kopi Kita", "great"), "")

	rec := doRequest(router, http.MethodPost, "/api/coffee-shops", body, contentType)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, "The rating field must be a number.", fields["rating"])
}

func TestCoffeeShopHandler_ListPagination(t *testing.T) {
	router, _ := newCoffeeShopRouter()

	for i := 0; i < 8; i++ {
		createTestShop(t, router, fmt.Sprintf("shop %d", i), false)
	}

	rec := doRequest(router, http.MethodGet, "/api/coffee-shops?page=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Data Coffee Shops retrieved successfully", env.Message)

	var page coffeeShopPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Shops, 6)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 6, page.Pagination.PerPage)
	assert.Equal(t, int64(8), page.Pagination.TotalItems)
	require.NotNil(t, page.Pagination.NextPageURL)
	assert.Equal(t, testBaseURL+"/api/coffee-shops?page=2", *page.Pagination.NextPageURL)

	rec = doRequest(router, http.MethodGet, "/api/coffee-shops?page=2", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Shops, 2)
	assert.Nil(t, page.Pagination.NextPageURL)
}

func TestCoffeeShopHandler_GetNotFound(t *testing.T) {
	router, _ := newCoffeeShopRouter()

	rec := doRequest(router, http.MethodGet, "/api/coffee-shops/7", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Coffee Shop not found", env.Message)
}

func TestCoffeeShopHandler_UpdateAddsImage(t *testing.T) {
	router, blobs := newCoffeeShopRouter()

	createTestShop(t, router, "Kopi Polos", false)

	body, contentType := postForm(t, shopFields("Kopi Berfoto", "5"), "new.jpg")

	rec := doRequest(router, http.MethodPut, "/api/coffee-shops/1", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Coffee Shop updated successfully", env.Message)

	var shop api.CoffeeShopResource
	require.NoError(t, json.Unmarshal(env.Data, &shop))
	assert.Equal(t, "Kopi Berfoto", shop.Name)
	assert.Equal(t, 5, shop.Rating)
	assert.NotEmpty(t, shop.Image)
	assert.Len(t, blobs.Keys(), 1)
}

func TestCoffeeShopHandler_UpdateWithoutImagePreservesIt(t *testing.T) {
	router, blobs := newCoffeeShopRouter()

	created := createTestShop(t, router, "Kopi Kita", true)

	body, contentType := postForm(t, shopFields("Kopi Kita Baru", "3"), "")

	rec := doRequest(router, http.MethodPut, "/api/coffee-shops/1", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var shop api.CoffeeShopResource
	require.NoError(t, json.Unmarshal(env.Data, &shop))

	assert.Equal(t, created.Image, shop.Image)
	assert.Len(t, blobs.Keys(), 1)
}

func TestCoffeeShopHandler_Delete(t *testing.T) {
	router, blobs := newCoffeeShopRouter()

	createTestShop(t, router, "Kopi Kita", true)

	rec := doRequest(router, http.MethodDelete, "/api/coffee-shops/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Coffee Shop deleted successfully", env.Message)

	assert.Empty(t, blobs.Keys())

	rec = doRequest(router, http.MethodGet, "/api/coffee-shops/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
