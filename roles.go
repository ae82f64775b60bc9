package session

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleBusinessAdmin, RoleCashier:
		return true
	default:
		return false
	}
}

// IsPlatform reports whether the role operates across tenants
func (r Role) IsPlatform() bool {
	return r == RoleSuperAdmin
}

// RequiresTenant reports whether the role must be bound to a business
func (r Role) RequiresTenant() bool {
	return r.IsValid() && !r.IsPlatform()
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleCashier:       0,
		RoleBusinessAdmin: 1,
		RoleSuperAdmin:    2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// AllRoles returns all predefined roles in hierarchical order
func AllRoles() []Role {
	return []Role{
		RoleCashier,
		RoleBusinessAdmin,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
