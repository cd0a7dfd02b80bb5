package domain

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrTextTooShort   = errors.New("review text too short")
	ErrRateLimited    = errors.New("rate limit exceeded")
)
