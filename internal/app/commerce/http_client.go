package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/app/catalog"
)

// publishableKeyHeader authenticates storefront-scoped API calls.
const publishableKeyHeader = "x-publishable-api-key"

// HTTPClient talks to a commerce platform exposing the standard store REST API.
type HTTPClient struct {
	baseURL        string
	publishableKey string
	client         *http.Client
}

// NewHTTPClient returns a client for the store API at baseURL.
func NewHTTPClient(baseURL, publishableKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		publishableKey: publishableKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// getJSON performs a GET against path and decodes the response body into dst.
func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	c.decorate(req)

	return c.do(req, path, dst)
}

// postJSON performs a POST with a JSON body against path and decodes the response into dst.
func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)

	return c.do(req, path, dst)
}

func (c *HTTPClient) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.publishableKey != "" {
		req.Header.Set(publishableKeyHeader, c.publishableKey)
	}
}

func (c *HTTPClient) do(req *http.Request, path string, dst any) error {
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("commerce API call %s failed: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("commerce API call %s returned status %d", path, res.StatusCode)
	}

	if dst == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode commerce API response for %s: %w", path, err)
	}

	return nil
}

// ListRegions returns all market regions.
func (c *HTTPClient) ListRegions(ctx context.Context) ([]Region, error) {
	var out struct {
		Regions []Region `json:"regions"`
	}
	if err := c.getJSON(ctx, "/store/regions", nil, &out); err != nil {
		return nil, err
	}
	return out.Regions, nil
}

// GetRegion returns one region by ID.
func (c *HTTPClient) GetRegion(ctx context.Context, id string) (*Region, error) {
	var out struct {
		Region Region `json:"region"`
	}
	if err := c.getJSON(ctx, "/store/regions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Region, nil
}

// ListProducts returns products matching the query.
func (c *HTTPClient) ListProducts(ctx context.Context, query ProductQuery) ([]catalog.Product, error) {
	params := url.Values{}
	if query.Query != "" {
		params.Set("q", query.Query)
	}
	if query.CategoryID != "" {
		params.Set("category_id", query.CategoryID)
	}
	if query.RegionID != "" {
		params.Set("region_id", query.RegionID)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}

	var out struct {
		Products []catalog.Product `json:"products"`
	}
	if err := c.getJSON(ctx, "/store/products", params, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProduct returns one product by ID.
func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var out struct {
		Product catalog.Product `json:"product"`
	}
	if err := c.getJSON(ctx, "/store/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// ListCategories returns all product categories.
func (c *HTTPClient) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var out struct {
		Categories []catalog.Category `json:"product_categories"`
	}
	if err := c.getJSON(ctx, "/store/product-categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreateCart creates a cart record on the commerce platform.
func (c *HTTPClient) CreateCart(ctx context.Context, params CreateCartParams) (*RemoteCart, error) {
	var out struct {
		Cart RemoteCart `json:"cart"`
	}
	if err := c.postJSON(ctx, "/store/carts", params, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}
