package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	session "github.com/tillworks/go-session"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range session.AllRoles() {
		assert.True(t, role.IsValid(), "role %s", role)
	}
	assert.False(t, session.Role("manager").IsValid())
	assert.False(t, session.Role("").IsValid())
}

func TestRoleTenancy(t *testing.T) {
	assert.True(t, session.RoleSuperAdmin.IsPlatform())
	assert.False(t, session.RoleSuperAdmin.RequiresTenant())

	assert.False(t, session.RoleBusinessAdmin.IsPlatform())
	assert.True(t, session.RoleBusinessAdmin.RequiresTenant())
	assert.True(t, session.RoleCashier.RequiresTenant())
}

func TestRoleIsAtLeast(t *testing.T) {
	assert.True(t, session.RoleSuperAdmin.IsAtLeast(session.RoleCashier))
	assert.True(t, session.RoleBusinessAdmin.IsAtLeast(session.RoleCashier))
	assert.True(t, session.RoleCashier.IsAtLeast(session.RoleCashier))
	assert.False(t, session.RoleCashier.IsAtLeast(session.RoleBusinessAdmin))
	assert.False(t, session.RoleBusinessAdmin.IsAtLeast(session.RoleSuperAdmin))
	assert.False(t, session.Role("manager").IsAtLeast(session.RoleCashier))
}

func TestParseRole(t *testing.T) {
	role, ok := session.ParseRole("business_admin")
	assert.True(t, ok)
	assert.Equal(t, session.RoleBusinessAdmin, role)

	_, ok = session.ParseRole("owner")
	assert.False(t, ok)
}
