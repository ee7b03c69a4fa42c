// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case. Generic codes mirror the HTTP status; the
// domain codes let clients tell identity categories apart without parsing
// messages.

package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeDeckNotFound  = "deck_not_found"
	ErrCodeSignInFailed  = "sign_in_failed"
	ErrCodeSignUpFailed  = "sign_up_failed"
	ErrCodeSignOutFailed = "sign_out_failed"
)
