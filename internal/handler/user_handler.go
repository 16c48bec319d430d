/*
Package handler provides HTTP handler functions for shopper profile management.
*/
package handler

import (
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"storefront/internal/app/session"
	"storefront/internal/app/users"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/randx"
	"storefront/internal/pkg/req"
	"storefront/internal/pkg/resp"
)

const (
	// presignExpiry bounds the validity of avatar presigned URLs.
	presignExpiry = 15 * time.Minute

	// maxAvatarBytes is the largest accepted avatar upload (5 MB).
	maxAvatarBytes int64 = 5 << 20
)

// HandleGetProfile returns the signed-in shopper's profile.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		snap := sess.State.Snapshot()
		if !snap.Authenticated || snap.User == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAuthenticated))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user":     snap.User,
			"darkMode": snap.DarkMode,
		})
	}
}

// HandleUpdateProfile shallow-merges the submitted fields into the signed-in
// shopper's profile.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var patch users.Patch
		if customErr := req.BindJSON(r, &patch); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := sess.State.UpdateProfile(r.Context(), patch)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrNotAuthenticated):
				resp.RespondError(w, r, errs.NewError(errs.ErrNotAuthenticated))
			case errors.Is(err, users.ErrNotFound):
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			default:
				logx.Error(err, "failed to update profile")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			}
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": user,
		})
	}
}

type PresignAvatarInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignAvatarURL hands out a presigned upload URL for a new avatar
// image. The client uploads directly to object storage and then saves the
// returned key through the profile update endpoint.
func HandlePresignAvatarURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if deps.Avatars == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable))
			return
		}

		if !sess.State.Snapshot().Authenticated {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotAuthenticated))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !strings.HasPrefix(input.MimeType, "image/") ||
			input.FileSize <= 0 || input.FileSize > maxAvatarBytes {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ext := path.Ext(input.FileName)
		key := "avatars/" + payload.UserID + "/" + randx.LineItemID() + ext

		url, err := deps.Avatars.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, presignExpiry)
		if err != nil {
			logx.Error(err, "failed to presign avatar upload", "user_id", payload.UserID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": url,
			"key":       key,
		})
	}
}
