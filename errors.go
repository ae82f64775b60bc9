package session

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidTransition     = "session_invalid_transition"
	TextCodeStaleAttempt          = "session_stale_attempt"
	TextCodeAuthRejected          = "session_authentication_rejected"
	TextCodeTransientFailure      = "session_transient_failure"
	TextCodeTenantUnresolved      = "session_tenant_unresolved"
	TextCodeLoginValidation       = "login_validation_failed"
	TextCodeInvalidCredentials    = "login_invalid_credentials"
	TextCodeUnknownTenant         = "login_unknown_tenant"
	TextCodeRateLimited           = "login_rate_limited"
	TextCodeServerError           = "login_server_error"
)

// ErrInvalidTransition is returned when a requested session phase change is not allowed.
var ErrInvalidTransition = goerrors.New("invalid session phase transition", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrStaleAttempt is returned when an asynchronous login or restore response
// resolves after the session has already moved on (e.g. an intervening logout).
var ErrStaleAttempt = goerrors.New("stale session attempt discarded", goerrors.CategoryConflict).
	WithTextCode(TextCodeStaleAttempt).
	WithCode(goerrors.CodeConflict)

// ErrAuthenticationRejected is returned when the persisted credential is
// invalid or expired. It erases the credential slot.
var ErrAuthenticationRejected = goerrors.New("credential rejected by identity provider", goerrors.CategoryAuth).
	WithTextCode(TextCodeAuthRejected).
	WithCode(goerrors.CodeUnauthorized)

// ErrTransientFailure is returned when the identity provider is unreachable or
// failing. The persisted credential is retained for a later retry.
var ErrTransientFailure = goerrors.New("identity provider unavailable", goerrors.CategoryOperation).
	WithTextCode(TextCodeTransientFailure)

// ErrTenantUnresolved is logged when the business profile bound to a user
// cannot be fetched. It never aborts authentication or restoration.
var ErrTenantUnresolved = goerrors.New("tenant profile could not be resolved", goerrors.CategoryOperation).
	WithTextCode(TextCodeTenantUnresolved)

// ErrLoginValidation is returned for malformed login input before any network call.
var ErrLoginValidation = goerrors.New("invalid login input", goerrors.CategoryValidation).
	WithTextCode(TextCodeLoginValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidCredentials is returned when the identity provider rejects the login credentials.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnknownTenant is returned when the tenant subdomain does not name a known business.
var ErrUnknownTenant = goerrors.New("unknown tenant", goerrors.CategoryNotFound).
	WithTextCode(TextCodeUnknownTenant).
	WithCode(goerrors.CodeNotFound)

// ErrRateLimited is returned when the identity provider throttles the login attempt.
var ErrRateLimited = goerrors.New("too many login attempts", goerrors.CategoryRateLimit).
	WithTextCode(TextCodeRateLimited)

// ErrServerError is returned for identity provider failures during login.
var ErrServerError = goerrors.New("identity provider error", goerrors.CategoryOperation).
	WithTextCode(TextCodeServerError)

// FailureKind classifies why a restoration attempt did not produce an
// authenticated session. The rejected vs. transient distinction decides
// whether the persisted credential survives.
type FailureKind string

const (
	// FailureNoCredential means no credential was persisted; nothing to retry.
	FailureNoCredential FailureKind = "no_credential"
	// FailureAuthenticationRejected means the credential is invalid or expired.
	FailureAuthenticationRejected FailureKind = "authentication_rejected"
	// FailureTransient means the identity provider could not be reached.
	FailureTransient FailureKind = "transient"
)

// IsAuthenticationRejected checks whether err means the credential itself was refused.
func IsAuthenticationRejected(err error) bool {
	return errors.Is(err, ErrAuthenticationRejected) || errors.Is(err, ErrInvalidCredentials)
}

// IsTransient checks whether err is a retryable identity provider failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientFailure)
}

// IsValidationFailure checks whether err is a local, pre-network input rejection.
func IsValidationFailure(err error) bool {
	return errors.Is(err, ErrLoginValidation)
}

// ClassifyRestoreFailure maps an identity provider error to a FailureKind.
// Anything not confirmed as a credential rejection is treated as transient so
// the persisted credential is never erased on an ambiguous failure.
func ClassifyRestoreFailure(err error) FailureKind {
	if IsAuthenticationRejected(err) {
		return FailureAuthenticationRejected
	}
	return FailureTransient
}

// LoginFailureKind names the user-facing category of a rejected login.
type LoginFailureKind string

const (
	LoginFailureInvalidCredentials LoginFailureKind = "invalid_credentials"
	LoginFailureUnknownTenant      LoginFailureKind = "unknown_tenant"
	LoginFailureRateLimited        LoginFailureKind = "rate_limited"
	LoginFailureServerError        LoginFailureKind = "server_error"
	LoginFailureValidation         LoginFailureKind = "validation"
)

// LoginFailureKindOf maps a login error to its display category. Unrecognized
// errors fall back to server_error rather than leaking internals to the UI.
func LoginFailureKindOf(err error) LoginFailureKind {
	switch {
	case errors.Is(err, ErrLoginValidation):
		return LoginFailureValidation
	case errors.Is(err, ErrInvalidCredentials):
		return LoginFailureInvalidCredentials
	case errors.Is(err, ErrUnknownTenant):
		return LoginFailureUnknownTenant
	case errors.Is(err, ErrRateLimited):
		return LoginFailureRateLimited
	default:
		return LoginFailureServerError
	}
}
