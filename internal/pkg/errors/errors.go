package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// Purchase payload validation failure kinds. Handlers map all four to a
	// 400 response; the distinct sentinels keep the reasons addressable with
	// errors.Is.
	ErrMissingField      = errors.New("missing required field")
	ErrTypeMismatch      = errors.New("field has wrong type")
	ErrInvalidDate       = errors.New("invalid date")
	ErrDuplicatePurchase = errors.New("client already has a purchase")
)
