package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/catalog"
	"storefront/internal/app/commerce"
	"storefront/internal/app/kvstore"
	"storefront/internal/app/notify"
	"storefront/internal/app/shop"
	"storefront/internal/app/users"
	"storefront/internal/configs"
	"storefront/internal/pkg/errs"
)

// fakeCommerce serves a small fixed catalog and fails region listing so
// sessions fall back to the built-in region list.
type fakeCommerce struct{}

func (fakeCommerce) ListRegions(ctx context.Context) ([]commerce.Region, error) {
	return nil, errors.New("unavailable")
}

func (fakeCommerce) GetRegion(ctx context.Context, id string) (*commerce.Region, error) {
	return nil, errors.New("unavailable")
}

func (fakeCommerce) ListProducts(ctx context.Context, query commerce.ProductQuery) ([]catalog.Product, error) {
	return []catalog.Product{
		{
			ID:    "prod_1",
			Title: "Hoodie",
			Variants: []catalog.Variant{
				{ID: "variant_1", Prices: []catalog.Price{{Amount: 5000, CurrencyCode: "usd"}}},
			},
		},
		{
			ID:    "prod_2",
			Title: "Cup",
			Variants: []catalog.Variant{
				{ID: "variant_2", Prices: []catalog.Price{{Amount: 1500, CurrencyCode: "usd"}}},
			},
		},
	}, nil
}

func (fakeCommerce) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if id != "prod_1" {
		return nil, errors.New("not found")
	}
	return &catalog.Product{ID: "prod_1", Title: "Hoodie"}, nil
}

func (fakeCommerce) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return []catalog.Category{{ID: "cat_1", Handle: "apparel", Name: "Apparel"}}, nil
}

func (fakeCommerce) CreateCart(ctx context.Context, params commerce.CreateCartParams) (*commerce.RemoteCart, error) {
	return &commerce.RemoteCart{ID: "cart_remote_1", RegionID: params.RegionID}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment: "development",
		Port:        8080,
		JWTSecret:   "test-secret-key",
	}

	client := fakeCommerce{}
	manager := shop.NewManager(users.NewMemoryRepository(), kvstore.NewMemoryStore(), client, notify.Discard{})
	t.Cleanup(manager.Shutdown)

	srv := httptest.NewServer(Router(&AppDeps{
		Config:   cfg,
		Shop:     manager,
		Commerce: client,
	}))
	t.Cleanup(srv.Close)

	return srv
}

// call issues a request with the optional bearer token and decodes the envelope.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, int, map[string]json.RawMessage) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &payload)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope struct {
		Code    int                        `json:"code"`
		Message string                     `json:"message"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))

	return res.StatusCode, envelope.Code, envelope.Data
}

func startSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	status, code, data := call(t, srv, http.MethodPost, "/api/session/start", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)

	var token string
	require.NoError(t, json.Unmarshal(data["token"], &token))
	require.NotEmpty(t, token)
	return token
}

func TestSessionRequired(t *testing.T) {
	srv := newTestServer(t)

	status, code, _ := call(t, srv, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, errs.ErrSessionRequired, code)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	status, code, data := call(t, srv, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "0", string(data["total"]))

	status, code, data = call(t, srv, http.MethodPost, "/api/cart/items", token, map[string]any{
		"variant_id": "variant_1",
		"title":      "Hoodie",
		"unit_price": 5000,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "10000", string(data["total"]))
	assert.JSONEq(t, "2", string(data["item_count"]))

	_, code, _ = call(t, srv, http.MethodPost, "/api/cart/items", token, map[string]any{
		"variant_id": "",
		"quantity":   1,
	})
	assert.Equal(t, errs.ErrCartItemInvalid, code)

	status, code, data = call(t, srv, http.MethodDelete, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "0", string(data["item_count"]))
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	_, code, _ := call(t, srv, http.MethodPost, "/api/auth/login", token, map[string]string{
		"email":    "john@example.com",
		"password": "wrong",
	})
	assert.Equal(t, errs.ErrInvalidCredentials, code)

	status, code, data := call(t, srv, http.MethodPost, "/api/auth/login", token, map[string]string{
		"email":    "john@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)

	var authed string
	require.NoError(t, json.Unmarshal(data["token"], &authed))

	var user users.User
	require.NoError(t, json.Unmarshal(data["user"], &user))
	assert.Equal(t, "john@example.com", user.Email)

	status, code, data = call(t, srv, http.MethodGet, "/api/user/profile", authed, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	require.NoError(t, json.Unmarshal(data["user"], &user))
	assert.Equal(t, "John", user.FirstName)

	status, code, _ = call(t, srv, http.MethodPost, "/api/auth/logout", authed, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
}

func TestProfileRequiresAuthentication(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	_, code, _ := call(t, srv, http.MethodGet, "/api/user/profile", token, nil)
	assert.Equal(t, errs.ErrNotAuthenticated, code)
}

func TestRegionFlow(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	status, code, data := call(t, srv, http.MethodGet, "/api/regions", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)

	var regions []map[string]any
	require.NoError(t, json.Unmarshal(data["regions"], &regions))
	require.Len(t, regions, 6, "fallback regions expected when commerce is down")

	status, code, _ = call(t, srv, http.MethodPost, "/api/region", token, map[string]string{
		"code": "JP",
		"name": "Japan",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, code)

	_, code, _ = call(t, srv, http.MethodPost, "/api/region", token, map[string]string{
		"code": "XX",
		"name": "Nowhere",
	})
	assert.Equal(t, errs.ErrRegionUnknown, code)
}

func TestThemeToggle(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	status, code, data := call(t, srv, http.MethodPost, "/api/theme/toggle", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "true", string(data["darkMode"]))

	_, _, data = call(t, srv, http.MethodPost, "/api/theme/toggle", token, nil)
	assert.JSONEq(t, "false", string(data["darkMode"]))
}

func TestProductListing(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	status, code, data := call(t, srv, http.MethodGet, "/api/products?price=under-2000", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(data["products"], &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Cup", products[0].Title)

	_, code, _ = call(t, srv, http.MethodGet, "/api/products/prod_missing", token, nil)
	assert.Equal(t, errs.ErrProductNotFound, code)
}

func TestCheckout(t *testing.T) {
	srv := newTestServer(t)
	token := startSession(t, srv)

	// No region selected yet.
	_, code, _ := call(t, srv, http.MethodPost, "/api/cart/checkout", token, nil)
	assert.Equal(t, errs.ErrRegionUnknown, code)

	_, code, _ = call(t, srv, http.MethodPost, "/api/region", token, map[string]string{
		"code": "US",
		"name": "United States",
	})
	require.Equal(t, 0, code)

	status, code, data := call(t, srv, http.MethodPost, "/api/cart/checkout", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, code)
	assert.JSONEq(t, `"cart_remote_1"`, string(data["cart_id"]))
}
