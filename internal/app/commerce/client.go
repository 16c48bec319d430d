package commerce

import (
	"context"

	"storefront/internal/app/catalog"
)

// Client is the commerce platform capability contract.
// Every call is context-bound and returns either a domain object or an error;
// callers decide how to degrade.
type Client interface {
	// ListRegions returns all market regions.
	ListRegions(ctx context.Context) ([]Region, error)

	// GetRegion returns one region by ID.
	GetRegion(ctx context.Context, id string) (*Region, error)

	// ListProducts returns products matching the query.
	ListProducts(ctx context.Context, query ProductQuery) ([]catalog.Product, error)

	// GetProduct returns one product by ID.
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)

	// ListCategories returns all product categories.
	ListCategories(ctx context.Context) ([]catalog.Category, error)

	// CreateCart creates a cart record on the commerce platform.
	CreateCart(ctx context.Context, params CreateCartParams) (*RemoteCart, error)
}
