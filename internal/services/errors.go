// Package services defines the study-session business logic: the session
// facade over the in-memory aggregates and the identity adapter over an
// external identity provider. This file centralizes the service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// The identity errors are category errors: their message is the fixed text a
// user is shown, and they never wrap the provider's error. Handlers may
// therefore render err.Error() directly.
package services

import "errors"

// Identity category errors.
var (
	// ErrSignInFailed is returned for every sign-in failure, whatever the
	// provider reported (unknown email, wrong password, network trouble).
	ErrSignInFailed = errors.New("Sign in failed. Please check your email and password, or create a new account if you are new to Studium.")

	// ErrSignUpFailed is returned for every account-creation failure.
	ErrSignUpFailed = errors.New("We could not create your account. Please use a valid email and a password with at least 6 characters, then try again.")

	// ErrSignOutFailed is returned when the provider could not end the session.
	ErrSignOutFailed = errors.New("Unable to sign out. Please try again.")
)

// Session errors.
var (
	// ErrDeckNotFound indicates that a read addressed a deck id that does not
	// exist. Mutations on a missing deck are no-ops and do not return it.
	ErrDeckNotFound = errors.New("deck not found")
)
