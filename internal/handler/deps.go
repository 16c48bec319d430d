package handler

import (
	"net/http"

	"storefront/internal/app/avatars"
	"storefront/internal/app/commerce"
	"storefront/internal/app/shop"
	"storefront/internal/configs"
	"storefront/internal/pkg/auth/jwt"
	"storefront/internal/pkg/errs"
)

// AppDeps bundles the collaborators shared by all HTTP handlers.
type AppDeps struct {
	Config   *configs.AppConfig
	Shop     *shop.Manager
	Commerce commerce.Client

	// Avatars is nil when avatar storage is not configured; the presign
	// handler degrades to a storage-unavailable error.
	Avatars avatars.Service
}

// requireSession extracts the shopper identity from the request context and
// resolves the live session it names. It fails when the request carries no
// usable session token.
func (deps *AppDeps) requireSession(r *http.Request) (*jwt.Payload, *shop.Session, *errs.CustomError) {
	payload := jwt.GetPayloadFromContext(r)
	if payload == nil || payload.SessionID == "" {
		return nil, nil, errs.NewError(errs.ErrSessionRequired)
	}

	sess := deps.Shop.GetOrCreate(r.Context(), payload.SessionID)
	return payload, sess, nil
}
