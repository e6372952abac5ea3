package contract

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrRateLimited      = errors.New("model rate limited")
	ErrRetriesExhausted = errors.New("retries exhausted")
	ErrUnauthorized     = errors.New("unauthorized")
)
