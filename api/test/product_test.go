package test

import (
	"net/http"
	"testing"

	"github.com/authentimart/cart-api/core/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	env, err := NewTestEnv(t, "product_crud_test")
	require.NoError(t, err)

	pn := product.ProductNew{
		Slug:          "ceramic-mug",
		Name:          "Ceramic Mug",
		Description:   "Stoneware, 350ml.",
		Price:         1200,
		OriginalPrice: intp(1500),
		Stock:         5,
		ImageURL:      "https://cdn.example.com/mug.jpg",
	}

	// Writes are staff-only.
	code := env.doJSON(t, http.MethodPost, "/products", pn, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	p := env.createProduct(t, pn)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1200, p.Price)

	// Lookup works by id and by slug.
	var byID, bySlug product.Product
	code = env.doJSON(t, http.MethodGet, "/products/"+p.ID, nil, &byID)
	require.Equal(t, http.StatusOK, code)
	code = env.doJSON(t, http.MethodGet, "/products/ceramic-mug", nil, &bySlug)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, byID.ID, bySlug.ID)

	var upd product.Product
	code = env.doJSON(t, http.MethodPut, "/products/"+p.ID, map[string]any{"price": 1100, "stock": 8}, &upd, asAdmin)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1100, upd.Price)
	assert.Equal(t, 8, upd.Stock)
	assert.Equal(t, p.Name, upd.Name, "omitted fields keep their values")

	code = env.doJSON(t, http.MethodGet, "/products/missing-slug", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductList(t *testing.T) {
	env, err := NewTestEnv(t, "product_list_test")
	require.NoError(t, err)

	env.createProduct(t, product.ProductNew{Slug: "mug", Name: "Mug", Price: 1200, Stock: 5})
	env.createProduct(t, product.ProductNew{Slug: "tee", Name: "Tee", Price: 550, Stock: 9})
	env.createProduct(t, product.ProductNew{Slug: "pin", Name: "Pin", Price: 120, Stock: 40})

	var ps []product.Product
	code := env.doJSON(t, http.MethodGet, "/products", nil, &ps)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, ps, 3)

	code = env.doJSON(t, http.MethodGet, "/products?per_page=2&page=2", nil, &ps)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, ps, 1)
}

func TestProductValidation(t *testing.T) {
	env, err := NewTestEnv(t, "product_valid_test")
	require.NoError(t, err)

	code := env.doJSON(t, http.MethodPost, "/products", product.ProductNew{
		Slug: "broken", Price: 100,
	}, nil, asAdmin)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}
