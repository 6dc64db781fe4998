package api

import (
	"github.com/wizardsmarket/wizards/internal/db"
	"github.com/wizardsmarket/wizards/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.onboardingSvc = services.NewOnboardingService(handler.repositories.Users, handler.repositories.Catalog)
	handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	handler.evaluator = services.NewCompletenessEvaluator(handler.repositories.Profiles)
	handler.projectService = services.NewProjectService(handler.repositories.Projects)
	handler.directoryService = services.NewDirectoryService(handler.repositories.Profiles)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.onboardingSvc == nil {
		handler.onboardingSvc = services.NewOnboardingService(handler.repositories.Users, handler.repositories.Catalog)
	}
	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	}
	if handler.evaluator == nil {
		handler.evaluator = services.NewCompletenessEvaluator(handler.repositories.Profiles)
	}
	if handler.projectService == nil {
		handler.projectService = services.NewProjectService(handler.repositories.Projects)
	}
	if handler.directoryService == nil {
		handler.directoryService = services.NewDirectoryService(handler.repositories.Profiles)
	}
	if handler.mailer == nil {
		handler.mailer = services.NewMailerService(nil)
	}
	if handler.loginLimiter == nil {
		handler.loginLimiter = newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow)
	}
	if handler.magicLinkLimiter == nil {
		handler.magicLinkLimiter = newAttemptLimiter(magicLinkRequestLimit, magicLinkRequestWindow)
	}
}
