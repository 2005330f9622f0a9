package product

import "errors"

var (
	// ErrProductNotFound is returned when the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrUnauthorized is returned when the caller has no user id.
	ErrUnauthorized = errors.New("user is not authenticated")
	// ErrUpstream is returned when the company roster cannot be fetched.
	ErrUpstream = errors.New("upstream company service failed")
	// ErrInvalidRequest is returned for malformed input.
	ErrInvalidRequest = errors.New("invalid request")
)
