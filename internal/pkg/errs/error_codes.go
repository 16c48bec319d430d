/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system failures both inside the
server and in responses sent to storefront clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained trailing content after valid JSON.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the configured limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Catalog and Cart Business Logic Errors
const (
	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = 2101

	// ErrRegionUnknown indicates that the selected region code is not in the region list.
	ErrRegionUnknown = 2102

	// ErrCartItemNotFound indicates that the referenced cart line item does not exist.
	ErrCartItemNotFound = 2201

	// ErrCartItemInvalid indicates that an incoming line item failed validation
	// (missing variant, non-positive quantity, negative price).
	ErrCartItemInvalid = 2202
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrSessionRequired indicates that the request carries no shopper session token.
	ErrSessionRequired = 3001

	// ErrInvalidEmail indicates that the supplied email address failed validation.
	ErrInvalidEmail = 3101

	// ErrInvalidPassword indicates that the supplied password failed validation.
	ErrInvalidPassword = 3102

	// ErrInvalidCredentials indicates that the email/password pair matched no account.
	ErrInvalidCredentials = 3103

	// ErrEmailTaken indicates that registration was attempted with an email already on record.
	ErrEmailTaken = 3104

	// ErrNotAuthenticated indicates an operation that requires a signed-in user was
	// attempted anonymously.
	ErrNotAuthenticated = 3105

	// ErrUserNotFound indicates that the referenced user record does not exist.
	ErrUserNotFound = 3106

	// ErrUnauthorized indicates a missing or unusable identity for a protected route.
	ErrUnauthorized = 3107
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrStorageUnavailable indicates that the avatar/file storage backend is not configured.
	ErrStorageUnavailable = 5001

	// ErrCommerceUnavailable indicates that the upstream commerce API call failed.
	ErrCommerceUnavailable = 5002
)
