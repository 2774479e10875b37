package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, cycle hours out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidInput is returned by the HOS engine when it is handed inputs it
// cannot simulate (non-positive drive time, malformed route summary).
// The engine fails fast: no partial plan is returned alongside it.
var ErrInvalidInput = errors.New("invalid input")

// ErrConfig is returned when the HOS rule parameters themselves are broken
// (e.g. a non-positive daily driving limit) and the simulation loop could not
// make forward progress. This indicates a deployment problem, not bad user
// input.
var ErrConfig = errors.New("configuration error")

// ErrRateLimited is returned by the routing client when the hourly request
// budget against the external routing API is exhausted.
// Handlers should map this to HTTP 429.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrUpstream is returned when the external routing API fails (network error,
// 5xx after retries, unparseable response). The trip itself may be fine;
// handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream routing failure")
