/*
Package handler provides the HTTP handlers and routing setup for the
storefront session service.

This file contains the session bootstrap handler: every storefront client
starts by obtaining a guest session token, which namespaces its cart, region,
and theme state.
*/
package handler

import (
	"net/http"

	"storefront/internal/pkg/auth/jwt"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/randx"
	"storefront/internal/pkg/resp"
)

// HandleStartSession issues a fresh guest session token.
// Clients holding a valid token keep their existing session instead.
func HandleStartSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil && payload.SessionID != "" {
			resp.RespondSuccess(w, r, map[string]any{
				"sessionId": payload.SessionID,
			})
			return
		}

		sessionID, err := randx.SessionID()
		if err != nil {
			logx.Error(err, "failed to generate session ID")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		payload := &jwt.Payload{
			SessionID: sessionID,
			UserType:  jwt.UserTypeGuest,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "failed to generate session token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		// Create the session eagerly so the region list is ready before the
		// first storefront render.
		deps.Shop.GetOrCreate(r.Context(), sessionID)

		resp.RespondSuccess(w, r, map[string]any{
			"token":     token,
			"sessionId": sessionID,
		})
	}
}
