package session

import (
	"github.com/google/uuid"
)

// Role is the user's role within the platform
type Role string

const (
	// RoleSuperAdmin is a platform operator with no tenant binding
	RoleSuperAdmin Role = "super_admin"
	// RoleBusinessAdmin administers a single business (i.e. catalog, staff)
	RoleBusinessAdmin Role = "business_admin"
	// RoleCashier operates the register for a single business
	RoleCashier Role = "cashier"
)

// User is the identity record affirmed by the identity provider. It is never
// mutated locally except by a full replace from a provider response.
type User struct {
	ID         uuid.UUID  `json:"id,omitempty"`
	Email      string     `json:"email,omitempty"`
	FullName   string     `json:"full_name,omitempty"`
	Role       Role       `json:"role,omitempty"`
	BusinessID *uuid.UUID `json:"business_id,omitempty"`
}

// Clone returns a deep copy so store snapshots stay isolated from callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.BusinessID != nil {
		id := *u.BusinessID
		clone.BusinessID = &id
	}
	return &clone
}

// BusinessStatus is the lifecycle status of a business
type BusinessStatus string

const (
	// BusinessStatusActive is a business in good standing
	BusinessStatusActive BusinessStatus = "active"
	// BusinessStatusSuspended is a business disabled by a platform operator
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// Business is the tenant a non-platform user belongs to. Absence is a valid,
// degraded state: consumers must render a session with a nil Business.
type Business struct {
	ID        uuid.UUID      `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Subdomain string         `json:"subdomain,omitempty"`
	Status    BusinessStatus `json:"status,omitempty"`
}

// Clone returns a copy of the business profile.
func (b *Business) Clone() *Business {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// LoginResult is the identity provider's response to a successful login.
type LoginResult struct {
	Credential string    `json:"credential"`
	User       *User     `json:"user"`
	Business   *Business `json:"business,omitempty"`
}
