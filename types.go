package session

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// IdentityProvider is the external service that validates credentials and
// affirms identity and tenant data. This core consumes it, never implements
// its server side.
type IdentityProvider interface {
	// GetCurrentUser returns the identity bound to the bearer credential.
	GetCurrentUser(ctx context.Context, credential string) (*User, error)

	// GetBusinessProfile returns the business profile bound to the bearer credential.
	GetBusinessProfile(ctx context.Context, credential string) (*Business, error)

	// Login exchanges credentials for a bearer credential plus identity data.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

// CredentialStorage is the durable single-slot register for the bearer
// credential. Writes overwrite, Clear erases; Read returns "" when no
// credential is persisted.
type CredentialStorage interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}

// Subscriber receives the new snapshot synchronously after each committed
// store transition.
type Subscriber func(Snapshot)

// DefaultLogger returns the plain stdout logger used when no Logger is configured.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
