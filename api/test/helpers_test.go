package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/authentimart/cart-api/core/product"
	"github.com/authentimart/cart-api/core/voucher"
	"github.com/stretchr/testify/require"
)

// doJSON sends one request through the env's cookie-holding client and,
// when out is non-nil and the response succeeded, decodes the body into
// it. It returns the status code so tests can assert error responses too.
func (env *TestEnv) doJSON(t *testing.T, method, path string, body any, out any, opts ...func(*http.Request)) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, env.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	res, err := env.client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode < http.StatusMultipleChoices {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

func (env *TestEnv) createProduct(t *testing.T, pn product.ProductNew) product.Product {
	t.Helper()

	var p product.Product
	code := env.doJSON(t, http.MethodPost, "/products", pn, &p, asAdmin)
	require.Equal(t, http.StatusCreated, code)
	return p
}

func (env *TestEnv) createVoucher(t *testing.T, vn voucher.VoucherNew) voucher.Voucher {
	t.Helper()

	var v voucher.Voucher
	code := env.doJSON(t, http.MethodPost, "/vouchers", vn, &v, asAdmin)
	require.Equal(t, http.StatusCreated, code)
	return v
}

func (env *TestEnv) addItem(t *testing.T, productID string, qty int) {
	t.Helper()

	body := map[string]any{"productId": productID, "quantity": qty}
	code := env.doJSON(t, http.MethodPut, "/cart/items", body, nil)
	require.Equal(t, http.StatusOK, code)
}

func intp(v int) *int { return &v }
