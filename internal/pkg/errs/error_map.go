/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to CustomError templates, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// The key is the error code; the value carries the client-facing message and,
// where it differs from 200, the HTTP status.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Catalog and Cart Business Logic Errors
	ErrProductNotFound:  {Code: ErrProductNotFound, Message: "Product not found."},
	ErrRegionUnknown:    {Code: ErrRegionUnknown, Message: "Unknown region."},
	ErrCartItemNotFound: {Code: ErrCartItemNotFound, Message: "Cart item not found."},
	ErrCartItemInvalid:  {Code: ErrCartItemInvalid, Message: "Invalid cart item."},

	// 3xxx: User, Session, and Security Errors
	ErrSessionRequired:    {Code: ErrSessionRequired, Message: "A shopping session is required."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid email or password."},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "An account with this email already exists."},
	ErrNotAuthenticated:   {Code: ErrNotAuthenticated, Message: "Please sign in to continue."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:             {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageUnavailable:  {Code: ErrStorageUnavailable, Message: "File storage is not available."},
	ErrCommerceUnavailable: {Code: ErrCommerceUnavailable, Message: "Store data is temporarily unavailable."},
}
