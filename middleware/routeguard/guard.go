// Package routeguard exposes the access gate as router middleware: the
// routing layer queries it before every protected render and gets back
// next/redirect/placeholder behavior instead of raw decisions.
package routeguard

import (
	"errors"

	"github.com/goliatone/go-router"

	session "github.com/tillworks/go-session"
)

// ErrMissingSnapshot is returned when the middleware has no way to read the
// current session.
var ErrMissingSnapshot = errors.New("routeguard: Snapshot function is required")

// DefaultContextKey is the Locals key the authenticated user is stored under.
const DefaultContextKey = "session_user"

// Config configures the guard for one protected route group.
type Config struct {
	// Snapshot reads the current session, normally store.Snapshot.
	Snapshot func() session.Snapshot

	// AllowedRoles restricts the route to the named roles. Empty means any
	// authenticated role suffices.
	AllowedRoles []session.Role

	// ContextKey is the Locals key for the authenticated *session.User.
	ContextKey string

	// LoginPath receives redirects for unauthenticated sessions.
	LoginPath string

	// UnauthorizedPath receives redirects for authenticated sessions whose
	// role is not allowed.
	UnauthorizedPath string

	// DeferHandler renders the neutral placeholder while the session is
	// settling. It must not redirect.
	DeferHandler router.HandlerFunc

	// ErrorHandler handles configuration and handler errors.
	ErrorHandler router.ErrorHandler
}

// GetDefaultConfig fills in defaults for any zero fields.
func GetDefaultConfig(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.UnauthorizedPath == "" {
		cfg.UnauthorizedPath = "/unauthorized"
	}
	if cfg.DeferHandler == nil {
		cfg.DeferHandler = func(ctx router.Context) error {
			return ctx.JSON(router.StatusOK, map[string]string{
				"status": "resuming",
			})
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx router.Context, err error) error {
			return err
		}
	}

	return cfg
}

// New returns middleware that evaluates the access gate before each request.
func New(config ...Config) router.MiddlewareFunc {
	cfg := GetDefaultConfig(config...)

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Snapshot == nil {
				return cfg.ErrorHandler(ctx, ErrMissingSnapshot)
			}

			snap := cfg.Snapshot()
			decision := session.Evaluate(snap, cfg.AllowedRoles...)

			switch {
			case decision.Deferred():
				return cfg.DeferHandler(ctx)
			case decision.Allowed():
				ctx.Locals(cfg.ContextKey, snap.User)
				return ctx.Next()
			case decision.Reason == session.DenyReasonForbidden:
				return ctx.Redirect(cfg.UnauthorizedPath, router.StatusSeeOther)
			default:
				return ctx.Redirect(cfg.LoginPath, router.StatusSeeOther)
			}
		}
	}
}
