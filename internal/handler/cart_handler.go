/*
Package handler provides HTTP handler functions for the shopping cart.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/app/cart"
	"storefront/internal/app/commerce"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/req"
	"storefront/internal/pkg/resp"
)

// cartPayload is the envelope data for every cart response: the cart plus its
// derived total (minor units) and item count.
func cartPayload(snap cart.Snapshot, total int64, count int) map[string]any {
	return map[string]any{
		"cart":       snap.Cart,
		"total":      total,
		"item_count": count,
	}
}

// HandleGetCart returns the session's cart with derived totals.
func HandleGetCart(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, cartPayload(sess.Cart.Snapshot(), sess.Cart.Total(), sess.Cart.ItemCount()))
	}
}

type AddCartItemInput struct {
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// HandleAddCartItem adds a line item to the cart, merging quantities when the
// variant is already present.
func HandleAddCartItem(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input AddCartItemInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap, err := sess.Cart.Add(cart.LineItem{
			VariantID: input.VariantID,
			Title:     input.Title,
			Thumbnail: input.Thumbnail,
			UnitPrice: input.UnitPrice,
			Quantity:  input.Quantity,
		})

		if err != nil {
			if errors.Is(err, cart.ErrInvalidItem) {
				resp.RespondError(w, r, errs.NewError(errs.ErrCartItemInvalid))
				return
			}
			logx.Error(err, "failed to add cart item")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, cartPayload(snap, sess.Cart.Total(), sess.Cart.ItemCount()))
	}
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateCartItem sets a line item's quantity exactly.
// A quantity of zero or less removes the item.
func HandleUpdateCartItem(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input UpdateCartItemInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap := sess.Cart.UpdateQuantity(itemID, input.Quantity)

		resp.RespondSuccess(w, r, cartPayload(snap, sess.Cart.Total(), sess.Cart.ItemCount()))
	}
}

// HandleRemoveCartItem deletes a line item from the cart.
func HandleRemoveCartItem(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		if itemID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		snap := sess.Cart.Remove(itemID)

		resp.RespondSuccess(w, r, cartPayload(snap, sess.Cart.Total(), sess.Cart.ItemCount()))
	}
}

// HandleClearCart empties the cart and removes its persisted record.
func HandleClearCart(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap := sess.Cart.Clear()

		resp.RespondSuccess(w, r, cartPayload(snap, 0, 0))
	}
}

// HandleCheckoutCart creates a remote cart on the commerce platform for the
// session's region, the first step of a checkout handoff.
func HandleCheckoutCart(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap := sess.State.Snapshot()
		if snap.Region == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRegionUnknown))
			return
		}

		remote, err := deps.Commerce.CreateCart(r.Context(), commerce.CreateCartParams{
			RegionID: snap.Region.Code,
		})
		if err != nil {
			logx.Error(err, "failed to create remote cart", "region", snap.Region.Code)
			resp.RespondError(w, r, errs.NewError(errs.ErrCommerceUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"cart_id": remote.ID,
		})
	}
}
