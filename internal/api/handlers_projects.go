package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/wizardsmarket/wizards/internal/models"
	"github.com/wizardsmarket/wizards/internal/services"
)

// CreateProject opens a new draft for the signed-in customer.
func (handler *Handler) CreateProject(c *fiber.Ctx) error {
	user := currentUser(c)

	var input projectInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "title is required and budget cannot be negative")
	}

	handler.ensureDependencies()
	project, err := handler.projectService.Create(user.ID, projectInputValues(input))
	if err != nil {
		if errors.Is(err, services.ErrProjectTitleRequired) {
			return apiError(c, fiber.StatusBadRequest, "title is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create project")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"project": projectPayload(project)})
}

// MyProjects lists all projects owned by the signed-in customer, drafts
// included.
func (handler *Handler) MyProjects(c *fiber.Ctx) error {
	user := currentUser(c)

	handler.ensureDependencies()
	projects, err := handler.projectService.ListForCustomer(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load projects")
	}
	return c.JSON(fiber.Map{"projects": projectListPayload(projects)})
}

func (handler *Handler) UpdateProject(c *fiber.Ctx) error {
	user := currentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var input projectInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "title is required and budget cannot be negative")
	}

	handler.ensureDependencies()
	project, err := handler.projectService.Update(user.ID, uint(projectID), projectInputValues(input))
	if err != nil {
		return projectWriteError(c, err, "failed to update project")
	}
	return c.JSON(fiber.Map{"project": projectPayload(project)})
}

// SetProjectStatus moves a project along draft -> published -> closed.
// Backward moves are rejected.
func (handler *Handler) SetProjectStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var input projectStatusInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "status must be published or closed")
	}

	handler.ensureDependencies()
	project, err := handler.projectService.SetStatus(user.ID, uint(projectID), input.Status)
	if err != nil {
		if errors.Is(err, services.ErrProjectStatusInvalid) {
			return apiError(c, fiber.StatusConflict, "status change not allowed")
		}
		return projectWriteError(c, err, "failed to update project status")
	}
	return c.JSON(fiber.Map{"project": projectPayload(project)})
}

func (handler *Handler) DeleteProject(c *fiber.Ctx) error {
	user := currentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid project id")
	}

	handler.ensureDependencies()
	if err := handler.projectService.Delete(user.ID, uint(projectID)); err != nil {
		return projectWriteError(c, err, "failed to delete project")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AddProjectOffer attaches an expert request to an owned project.
func (handler *Handler) AddProjectOffer(c *fiber.Ctx) error {
	user := currentUser(c)
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var input offerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "headline is required and expert count must be at least one")
	}

	handler.ensureDependencies()
	offer, err := handler.projectService.AddOffer(user.ID, uint(projectID), services.OfferInput{
		PlatformID:     input.PlatformID,
		Headline:       input.Headline,
		Description:    input.Description,
		RequiredSkills: input.RequiredSkills,
		ExpertCount:    input.ExpertCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOfferHeadlineRequired):
			return apiError(c, fiber.StatusBadRequest, "headline is required")
		case errors.Is(err, services.ErrOfferExpertCountInvalid):
			return apiError(c, fiber.StatusBadRequest, "expert count must be at least one")
		default:
			return projectWriteError(c, err, "failed to add offer")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"offer": offerPayload(offer)})
}

// BrowseProjects lists published projects for experts.
func (handler *Handler) BrowseProjects(c *fiber.Ctx) error {
	handler.ensureDependencies()
	projects, err := handler.projectService.ListPublished(services.ProjectFilter{
		CategoryID: queryUint(c, "category_id"),
		Query:      c.Query("q"),
	})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load projects")
	}
	return c.JSON(fiber.Map{"projects": projectListPayload(projects)})
}

// GetPublishedProject serves one published project with its offers. Drafts
// and closed projects are not visible here.
func (handler *Handler) GetPublishedProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid project id")
	}

	handler.ensureDependencies()
	project, err := handler.projectService.FindPublished(uint(projectID))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotPublished) || errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "project not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load project")
	}

	offers := make([]fiber.Map, 0, len(project.Offers))
	for _, offer := range project.Offers {
		offers = append(offers, offerPayload(offer))
	}
	payload := projectPayload(project)
	payload["offers"] = offers
	return c.JSON(fiber.Map{"project": payload})
}

func projectWriteError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "project not found")
	case errors.Is(err, services.ErrProjectNotOwned):
		return apiError(c, fiber.StatusForbidden, "project belongs to another customer")
	case errors.Is(err, services.ErrProjectTitleRequired):
		return apiError(c, fiber.StatusBadRequest, "title is required")
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func projectInputValues(input projectInput) services.ProjectInput {
	return services.ProjectInput{
		Title:         input.Title,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Budget:        input.Budget,
		Deadline:      input.Deadline,
	}
}

func projectListPayload(projects []models.ITProject) []fiber.Map {
	payloads := make([]fiber.Map, 0, len(projects))
	for _, project := range projects {
		payloads = append(payloads, projectPayload(project))
	}
	return payloads
}

func projectPayload(project models.ITProject) fiber.Map {
	return fiber.Map{
		"id":             project.ID,
		"customer_id":    project.CustomerID,
		"title":          project.Title,
		"description":    project.Description,
		"status":         project.Status,
		"category_id":    project.CategoryID,
		"subcategory_id": project.SubcategoryID,
		"budget":         project.Budget,
		"deadline":       project.Deadline,
		"created_at":     project.CreatedAt,
	}
}

func offerPayload(offer models.ProjectOffer) fiber.Map {
	return fiber.Map{
		"id":              offer.ID,
		"project_id":      offer.ProjectID,
		"platform_id":     offer.PlatformID,
		"headline":        offer.Headline,
		"description":     offer.Description,
		"required_skills": []string(offer.RequiredSkills),
		"expert_count":    offer.ExpertCount,
	}
}
