/*
Package catalog contains the read-only product model and the pure
filter/sort derivation applied to product listings.

Products are sourced from the commerce API and never mutated here.
*/
package catalog

// Price is one listed price of a variant, in minor currency units.
type Price struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Prices []Price `json:"prices"`
}

// Category is a product category reference.
type Category struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// Product is a storefront catalog entry.
type Product struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Handle     string     `json:"handle"`
	Thumbnail  string     `json:"thumbnail"`
	Variants   []Variant  `json:"variants"`
	Categories []Category `json:"categories"`
}

// ListedPrice returns the product's display price: the first price of the
// first variant, in minor units. ok is false when the product carries no price.
func (p Product) ListedPrice() (int64, bool) {
	if len(p.Variants) == 0 || len(p.Variants[0].Prices) == 0 {
		return 0, false
	}
	return p.Variants[0].Prices[0].Amount, true
}
