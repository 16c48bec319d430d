/*
Package commerce provides the client for the upstream commerce platform API.

The Client interface mirrors the capability contract consumed by the state
stores and handlers: region listing, product listing/retrieval, category
listing, and remote cart creation. Call sites treat every failure as
degradable; no partial state escapes a failed call.
*/
package commerce

// Country is one country attached to an API region.
type Country struct {
	ISO2        string `json:"iso_2"`
	DisplayName string `json:"display_name"`
}

// Region is a market configuration as returned by the commerce API.
// One region can span several countries sharing a currency.
type Region struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currency_code"`
	Countries    []Country `json:"countries"`
}

// ProductQuery narrows a product listing call.
type ProductQuery struct {
	// Query is a free-text search term, empty for no search.
	Query string

	// CategoryID restricts the listing to one category, empty for all.
	CategoryID string

	// RegionID scopes pricing to a region, empty for the default.
	RegionID string

	// Limit caps the number of returned products; 0 means the server default.
	Limit int

	// Offset skips the first N products for pagination.
	Offset int
}

// CreateCartParams carries the inputs for creating a remote cart.
type CreateCartParams struct {
	RegionID string `json:"region_id"`
}

// RemoteCart is the server-side cart record created on the commerce platform.
// The local cart store only keeps its identifier for a later checkout handoff.
type RemoteCart struct {
	ID       string `json:"id"`
	RegionID string `json:"region_id"`
}
