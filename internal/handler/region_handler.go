/*
Package handler provides HTTP handler functions for region selection and the
theme preference.
*/
package handler

import (
	"net/http"

	"storefront/internal/app/session"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/req"
	"storefront/internal/pkg/resp"
)

// HandleListRegions returns the session's selectable regions and the current selection.
func HandleListRegions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap := sess.State.Snapshot()

		resp.RespondSuccess(w, r, map[string]any{
			"regions": snap.Regions,
			"region":  snap.Region,
		})
	}
}

// HandleSelectRegion replaces the session's active region.
// The submitted region must come from the session's region list.
func HandleSelectRegion(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input session.Region
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Code == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		snap := sess.State.Snapshot()
		known := false
		for _, region := range snap.Regions {
			if region.Code == input.Code && region.Name == input.Name {
				input = region
				known = true
				break
			}
		}

		if !known {
			resp.RespondError(w, r, errs.NewError(errs.ErrRegionUnknown))
			return
		}

		sess.State.SetRegion(input)

		resp.RespondSuccess(w, r, map[string]any{
			"region": input,
		})
	}
}

// HandleToggleTheme flips the session's dark-mode flag. For signed-in
// shoppers the flag is also merged into the account preferences.
func HandleToggleTheme(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		darkMode := sess.State.ToggleDarkMode(r.Context())

		resp.RespondSuccess(w, r, map[string]any{
			"darkMode": darkMode,
		})
	}
}
