package types

import "errors"

// Sentinel errors shared across the domain layers. Handlers map these onto
// HTTP status codes.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrConflict   = errors.New("item already exists or conflict")
	ErrBadRequest = errors.New("bad request")
)
