package api

import (
	"github.com/gofiber/fiber/v2"
)

// Catalogs serves every reference list the client forms need in one
// response. The lists are seeded by migrations and effectively static.
func (handler *Handler) Catalogs(c *fiber.Ctx) error {
	handler.ensureDependencies()
	catalog := handler.repositories.Catalog

	roles, err := catalog.ListRoles()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}
	countries, err := catalog.ListCountries()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}
	professions, err := catalog.ListProfessions()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}
	platforms, err := catalog.ListPlatforms()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}
	solutions, err := catalog.ListSolutions()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}
	categories, err := catalog.ListCategories()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load catalogs")
	}

	return c.JSON(fiber.Map{
		"roles":       roles,
		"countries":   countries,
		"professions": professions,
		"platforms":   platforms,
		"solutions":   solutions,
		"categories":  categories,
	})
}
