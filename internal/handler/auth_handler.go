/*
Package handler provides HTTP handler functions for shopper authentication.
*/
package handler

import (
	"errors"
	"net/http"

	"storefront/internal/app/session"
	"storefront/internal/app/users"
	"storefront/internal/pkg/auth/jwt"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
	"storefront/internal/pkg/req"
	"storefront/internal/pkg/resp"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies shopper credentials against the session store and
// issues a registered-session token on success.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := sess.State.Login(r.Context(), input.Email, input.Password)
		if err != nil {
			logx.Warn("login failed", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		newPayload := &jwt.Payload{
			SessionID: payload.SessionID,
			UserID:    user.ID,
			Email:     user.Email,
			UserType:  jwt.UserTypeRegistered,
		}

		token, err := jwt.GenerateToken(newPayload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "login: token generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// HandleRegister creates a new shopper account and logs it in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := sess.State.Register(r.Context(), users.NewUserInput{
			Email:     input.Email,
			Password:  input.Password,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		})

		if err != nil {
			switch {
			case errors.Is(err, session.ErrInvalidEmail):
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			case errors.Is(err, session.ErrInvalidPassword):
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			case errors.Is(err, users.ErrEmailTaken):
				logx.Warn("registration conflict: email already exists", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
			default:
				logx.Error(err, "failed to register shopper")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			}
			return
		}

		newPayload := &jwt.Payload{
			SessionID: payload.SessionID,
			UserID:    user.ID,
			Email:     user.Email,
			UserType:  jwt.UserTypeRegistered,
		}

		token, err := jwt.GenerateToken(newPayload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "register: token generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// HandleLogout clears the active user from the session and hands back a
// guest token for the same shopping session. Cart and region survive.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, sess, customErr := deps.requireSession(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		sess.State.Logout()

		guestPayload := &jwt.Payload{
			SessionID: payload.SessionID,
			UserType:  jwt.UserTypeGuest,
		}

		token, err := jwt.GenerateToken(guestPayload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "logout: token generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
		})
	}
}
