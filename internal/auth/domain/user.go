package domain

import "time"

// Role is the platform role a user holds. Roles are immutable after
// registration; there is no role-change endpoint.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleMerchant Role = "merchant"
	RoleLogistic Role = "logistic"
)

// ValidRole reports whether s names one of the platform roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleDriver, RoleMerchant, RoleLogistic:
		return true
	}
	return false
}

// Status models soft deletion and suspension. Users are never hard-deleted
// by the auth service.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// Provider tags where the credentials came from.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

type User struct {
	ID           string
	Name         string
	Email        string // stored lowercased; uniqueness is case-insensitive
	Phone        string // optional; unique when present
	PasswordHash string // argon2id encoded
	Role         Role
	Status       Status
	Provider     Provider
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the user may authenticate.
func (u User) IsActive() bool { return u.Status == StatusActive }
