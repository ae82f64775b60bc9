package routeguard_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	session "github.com/tillworks/go-session"
	"github.com/tillworks/go-session/middleware/routeguard"
)

func snapshotFunc(snap session.Snapshot) func() session.Snapshot {
	return func() session.Snapshot { return snap }
}

func newCashierSnapshot() session.Snapshot {
	return session.Snapshot{
		Phase: session.PhaseAuthenticated,
		User: &session.User{
			ID:    uuid.New(),
			Email: "cashier@acme.example",
			Role:  session.RoleCashier,
		},
	}
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	snap := newCashierSnapshot()
	middleware := routeguard.New(routeguard.Config{
		Snapshot:     snapshotFunc(snap),
		AllowedRoles: []session.Role{session.RoleCashier},
	})

	ctx := router.NewMockContext()
	ctx.On("Locals", routeguard.DefaultContextKey, mock.AnythingOfType("*session.User")).Return(nil)

	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	middleware := routeguard.New(routeguard.Config{
		Snapshot: snapshotFunc(session.Snapshot{Phase: session.PhaseAnonymous}),
	})

	ctx := router.NewMockContext()
	var redirectPath string
	ctx.On("Redirect", mock.Anything, []int{router.StatusSeeOther}).Run(func(args mock.Arguments) {
		redirectPath = args.String(0)
	}).Return(nil)

	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.Equal(t, "/login", redirectPath)
	assert.False(t, ctx.NextCalled)
}

func TestGuardRedirectsForbiddenRole(t *testing.T) {
	snap := newCashierSnapshot()
	middleware := routeguard.New(routeguard.Config{
		Snapshot:         snapshotFunc(snap),
		AllowedRoles:     []session.Role{session.RoleSuperAdmin},
		UnauthorizedPath: "/denied",
	})

	ctx := router.NewMockContext()
	var redirectPath string
	ctx.On("Redirect", mock.Anything, []int{router.StatusSeeOther}).Run(func(args mock.Arguments) {
		redirectPath = args.String(0)
	}).Return(nil)

	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.Equal(t, "/denied", redirectPath)
	assert.False(t, ctx.NextCalled)
}

func TestGuardDefersWhileResuming(t *testing.T) {
	middleware := routeguard.New(routeguard.Config{
		Snapshot: snapshotFunc(session.Snapshot{Phase: session.PhaseResuming}),
	})

	ctx := router.NewMockContext()
	var payload map[string]string
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(map[string]string)
	}).Return(nil)

	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.Equal(t, "resuming", payload["status"])
	assert.False(t, ctx.NextCalled)
}

func TestGuardCustomDeferHandler(t *testing.T) {
	deferred := false
	middleware := routeguard.New(routeguard.Config{
		Snapshot: snapshotFunc(session.Snapshot{}),
		DeferHandler: func(ctx router.Context) error {
			deferred = true
			return nil
		},
	})

	ctx := router.NewMockContext()
	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.True(t, deferred)
	assert.False(t, ctx.NextCalled)
}

func TestGuardRequiresSnapshotFunc(t *testing.T) {
	var captured error
	middleware := routeguard.New(routeguard.Config{
		ErrorHandler: func(ctx router.Context, err error) error {
			captured = err
			return nil
		},
	})

	ctx := router.NewMockContext()
	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.ErrorIs(t, captured, routeguard.ErrMissingSnapshot)
}

func TestGuardCustomContextKey(t *testing.T) {
	snap := newCashierSnapshot()
	middleware := routeguard.New(routeguard.Config{
		Snapshot:   snapshotFunc(snap),
		ContextKey: "current_user",
	})

	ctx := router.NewMockContext()
	ctx.On("Locals", "current_user", mock.AnythingOfType("*session.User")).Return(nil)

	handler := middleware(func(ctx router.Context) error { return ctx.Next() })
	require.NoError(t, handler(ctx))
	assert.True(t, ctx.NextCalled)
}
