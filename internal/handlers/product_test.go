package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jammission/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProductCreateDerivesUniqueSlug(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}

	for i, want := range []string{"fresh-eggs", "fresh-eggs-1"} {
		rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/products", map[string]interface{}{
			"name":  "Fresh Eggs",
			"price": "5.00",
		})
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code, "iteration %d", i)

		var product models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
		require.Equal(t, want, product.Slug, "iteration %d", i)
		require.True(t, product.InStock)
	}
}

func TestProductCreateKeepsExplicitSlug(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/products", map[string]interface{}{
		"name":  "Fresh Eggs",
		"slug":  "eggs",
		"price": "5.00",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	require.Equal(t, "eggs", product.Slug)
}

func TestProductCreateRejectsNegativePrice(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}

	rec, c := doJSONRequest(t, echo.New(), http.MethodPost, "/api/v1/admin/owner/products", map[string]interface{}{
		"name":  "Fresh Eggs",
		"price": "-1.00",
	})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductUpdateRenameKeepsSlug(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}
	require.NoError(t, db.Create(&models.Product{
		Name:    "Fresh Eggs",
		Slug:    "fresh-eggs",
		Price:   decimal.RequireFromString("5.00"),
		InStock: true,
	}).Error)

	rec, c := doJSONRequest(t, echo.New(), http.MethodPut, "/api/v1/admin/owner/products/fresh-eggs", map[string]interface{}{
		"name":  "Organic Eggs",
		"slug":  "fresh-eggs",
		"price": "6.00",
	})
	c.SetParamNames("slug")
	c.SetParamValues("fresh-eggs")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var product models.Product
	require.NoError(t, db.First(&product).Error)
	require.Equal(t, "Organic Eggs", product.Name)
	require.Equal(t, "fresh-eggs", product.Slug)
	require.True(t, product.Price.Equal(decimal.RequireFromString("6.00")))
}

func TestProductListShowsInStockOnly(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}
	require.NoError(t, db.Create(&models.Product{Name: "Eggs", Slug: "eggs", Price: decimal.RequireFromString("5.00"), InStock: true}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Chicks", Slug: "chicks", Price: decimal.RequireFromString("12.50"), InStock: false}).Error)

	rec, c := doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/products", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "eggs", body.Data[0].Slug)
	require.Equal(t, int64(1), body.Meta.Total)
}

func TestProductGetBySlugHidesOutOfStock(t *testing.T) {
	db := openDB(t)
	h := &ProductHandler{DB: db}
	require.NoError(t, db.Create(&models.Product{Name: "Chicks", Slug: "chicks", Price: decimal.RequireFromString("12.50"), InStock: false}).Error)

	rec, c := doJSONRequest(t, echo.New(), http.MethodGet, "/api/v1/products/chicks", nil)
	c.SetParamNames("slug")
	c.SetParamValues("chicks")
	require.NoError(t, h.GetBySlug(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
