package services

import (
	"errors"
	"strings"

	"github.com/wizardsmarket/wizards/internal/models"
)

var (
	ErrOnboardingNameRequired = errors.New("onboarding name is required")
	ErrOnboardingRoleInvalid  = errors.New("onboarding role is invalid")
)

type OnboardingUserRepository interface {
	SaveOnboarding(userID uint, firstName string, lastName string, roleID uint) error
}

type RoleCatalog interface {
	RoleByName(name string) (models.UserRole, error)
}

type OnboardingService struct {
	users   OnboardingUserRepository
	catalog RoleCatalog
}

func NewOnboardingService(users OnboardingUserRepository, catalog RoleCatalog) *OnboardingService {
	return &OnboardingService{users: users, catalog: catalog}
}

// Complete records the onboarding submission: display name plus the chosen
// role. The account moves from RoleUnset to RoleSet/Incomplete.
func (service *OnboardingService) Complete(userID uint, firstNameRaw string, lastNameRaw string, roleNameRaw string) (Role, error) {
	firstName := strings.TrimSpace(firstNameRaw)
	lastName := strings.TrimSpace(lastNameRaw)
	if firstName == "" || lastName == "" {
		return RoleUnset, ErrOnboardingNameRequired
	}

	role := ParseRole(roleNameRaw)
	if !SelectableRole(role) {
		return RoleUnset, ErrOnboardingRoleInvalid
	}

	roleRow, err := service.catalog.RoleByName(role.Name())
	if err != nil {
		return RoleUnset, err
	}
	if err := service.users.SaveOnboarding(userID, firstName, lastName, roleRow.ID); err != nil {
		return RoleUnset, err
	}
	return role, nil
}
