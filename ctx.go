package session

import "context"

var userCtxKey = &contextKey{"user"}
var snapshotCtxKey = &contextKey{"snapshot"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithSnapshotContext sets the session snapshot in the given context
func WithSnapshotContext(r context.Context, snap Snapshot) context.Context {
	return context.WithValue(r, snapshotCtxKey, snap)
}

// SnapshotFromContext finds the session snapshot from the context.
func SnapshotFromContext(ctx context.Context) (Snapshot, bool) {
	raw, ok := ctx.Value(snapshotCtxKey).(Snapshot)
	return raw, ok
}

// RoleFromContext is a convenience to read the authenticated role directly
// from the standard context.
func RoleFromContext(ctx context.Context) (Role, bool) {
	if user, ok := FromContext(ctx); ok && user != nil {
		return user.Role, true
	}
	if snap, ok := SnapshotFromContext(ctx); ok {
		return snap.Role()
	}
	return "", false
}
