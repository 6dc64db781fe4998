package services

import (
	"strings"

	"github.com/wizardsmarket/wizards/internal/models"
)

// Role enumerates the profile roles the gating logic branches on. Unknown role
// names collapse into RoleUnset.
type Role int

const (
	RoleUnset Role = iota
	RoleExpert
	RoleCustomer
	RoleAdmin
)

func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case models.RoleNameExpert:
		return RoleExpert
	case models.RoleNameCustomer:
		return RoleCustomer
	case models.RoleNameAdmin:
		return RoleAdmin
	default:
		return RoleUnset
	}
}

func (role Role) Name() string {
	switch role {
	case RoleExpert:
		return models.RoleNameExpert
	case RoleCustomer:
		return models.RoleNameCustomer
	case RoleAdmin:
		return models.RoleNameAdmin
	default:
		return ""
	}
}

// SelectableRole reports whether a user may pick the role during onboarding.
// Admin accounts are assigned out of band, never self-selected.
func SelectableRole(role Role) bool {
	return role == RoleExpert || role == RoleCustomer
}
