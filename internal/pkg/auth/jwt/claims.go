package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued to storefront clients.
// It combines the standard claims with the shopper identity the handlers need.
type Payload struct {
	// StandardClaims embeds the JWT standard fields (Exp, Iat, Iss) used for
	// token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// SessionID identifies the shopping session. Every token carries one;
	// the session namespaces cart, region, and theme persistence.
	SessionID string `json:"session_id"`

	// UserID is the account identifier when the shopper is signed in, empty for guests.
	UserID string `json:"user_id,omitempty"`

	// Email is the signed-in shopper's email, empty for guests.
	Email string `json:"email,omitempty"`

	// UserType is "guest" or "registered"; handlers gate account operations on it.
	UserType string `json:"user_type"`
}
