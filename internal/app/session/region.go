package session

import (
	"context"
	"strings"

	"storefront/internal/app/commerce"
)

// Region is a selectable market: a currency plus a display name and flag.
// Regions are immutable once constructed; the shopper selects one, never
// creates one.
type Region struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Flag     string `json:"flag"`
}

// fallbackRegions is substituted whenever the commerce API region listing
// fails, so the storefront is never left without options.
func fallbackRegions() []Region {
	return []Region{
		{Code: "US", Name: "United States", Currency: "USD", Flag: "🇺🇸"},
		{Code: "CA", Name: "Canada", Currency: "CAD", Flag: "🇨🇦"},
		{Code: "GB", Name: "United Kingdom", Currency: "GBP", Flag: "🇬🇧"},
		{Code: "EU", Name: "European Union", Currency: "EUR", Flag: "🇪🇺"},
		{Code: "AU", Name: "Australia", Currency: "AUD", Flag: "🇦🇺"},
		{Code: "JP", Name: "Japan", Currency: "JPY", Flag: "🇯🇵"},
	}
}

// flattenRegions expands API regions into one selectable entry per country.
// Large multi-country regions additionally get an "Other (<region>)" entry so
// shoppers outside the listed countries can still pick the region's currency.
func flattenRegions(apiRegions []commerce.Region) []Region {
	var out []Region

	for _, region := range apiRegions {
		if len(region.Countries) == 0 {
			continue
		}

		for _, country := range region.Countries {
			out = append(out, Region{
				Code:     region.ID,
				Name:     country.DisplayName,
				Currency: strings.ToUpper(region.CurrencyCode),
				Flag:     strings.ToUpper(country.ISO2),
			})
		}

		switch strings.ToLower(region.Name) {
		case "europe", "africa", "asia":
			out = append(out, Region{
				Code:     region.ID,
				Name:     "Other (" + region.Name + ")",
				Currency: strings.ToUpper(region.CurrencyCode),
			})
		}
	}

	return out
}

// regionLister is the slice of the commerce client the session store needs.
type regionLister interface {
	ListRegions(ctx context.Context) ([]commerce.Region, error)
}
