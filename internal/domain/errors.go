package domain

import "errors"

var (
	// ErrJobNotFound signals a missing job posting.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidRequest signals request parameters or a payload that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSearchUnavailable signals that the search engine could not serve the request.
	ErrSearchUnavailable = errors.New("search engine unavailable")
)
