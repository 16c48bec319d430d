/*
Package handler provides HTTP handler functions for catalog browsing and search.

Listings are fetched from the commerce API and narrowed server-side by the
pure catalog filter, mirroring the storefront's derived filtering: the full
product set is the input, the query parameters are the criteria.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/app/catalog"
	"storefront/internal/app/commerce"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/resp"
)

// HandleListProducts returns the filtered, ordered product listing.
// Recognized query parameters: q, category, price, sort.
func HandleListProducts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var regionID string
		if snap := sess.State.Snapshot(); snap.Region != nil {
			regionID = snap.Region.Code
		}

		products, err := deps.Commerce.ListProducts(r.Context(), commerce.ProductQuery{
			RegionID: regionID,
		})
		if err != nil {
			logx.Error(err, "failed to list products from commerce API")
			resp.RespondError(w, r, errs.NewError(errs.ErrCommerceUnavailable))
			return
		}

		query := r.URL.Query()
		criteria := catalog.Criteria{
			Query:    query.Get("q"),
			Category: query.Get("category"),
			Price:    query.Get("price"),
			Sort:     query.Get("sort"),
		}

		filtered := catalog.Filter(products, criteria)

		resp.RespondSuccess(w, r, map[string]any{
			"products": filtered,
			"count":    len(filtered),
		})
	}
}

// HandleGetProduct returns one product by ID.
func HandleGetProduct(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, customErr := deps.requireSession(r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		product, err := deps.Commerce.GetProduct(r.Context(), productID)
		if err != nil {
			logx.Warn("product fetch failed", "product_id", productID, "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrProductNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"product": product,
		})
	}
}

// HandleListCategories returns all product categories.
func HandleListCategories(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, customErr := deps.requireSession(r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		categories, err := deps.Commerce.ListCategories(r.Context())
		if err != nil {
			logx.Error(err, "failed to list categories from commerce API")
			resp.RespondError(w, r, errs.NewError(errs.ErrCommerceUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"categories": categories,
		})
	}
}
