package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wizardsmarket/wizards/internal/models"
)

var (
	ErrProjectTitleRequired    = errors.New("project title is required")
	ErrProjectNotPublished     = errors.New("project is not published")
	ErrProjectNotOwned         = errors.New("project not owned by customer")
	ErrProjectStatusInvalid    = errors.New("project status transition invalid")
	ErrOfferHeadlineRequired   = errors.New("offer headline is required")
	ErrOfferExpertCountInvalid = errors.New("offer expert count must be at least one")
)

type ProjectRepository interface {
	Create(project *models.ITProject) error
	FindByID(projectID uint) (models.ITProject, error)
	UpdateByID(projectID uint, updates map[string]any) error
	Delete(projectID uint) error
	ListByCustomer(customerID uint) ([]models.ITProject, error)
	ListPublished(filter ProjectFilter) ([]models.ITProject, error)
	CreateOffer(offer *models.ProjectOffer) error
	ListOffers(projectID uint) ([]models.ProjectOffer, error)
}

type ProjectFilter struct {
	CategoryID *uint
	Query      string
}

type ProjectInput struct {
	Title         string
	Description   string
	CategoryID    *uint
	SubcategoryID *uint
	Budget        int
	Deadline      *time.Time
}

type OfferInput struct {
	PlatformID     *uint
	Headline       string
	Description    string
	RequiredSkills []string
	ExpertCount    int
}

type ProjectService struct {
	projects ProjectRepository
}

func NewProjectService(projects ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (service *ProjectService) Create(customerID uint, input ProjectInput) (models.ITProject, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.ITProject{}, ErrProjectTitleRequired
	}

	project := models.ITProject{
		CustomerID:    customerID,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		Status:        models.ProjectStatusDraft,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		Budget:        input.Budget,
		Deadline:      input.Deadline,
	}
	if err := service.projects.Create(&project); err != nil {
		return models.ITProject{}, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (service *ProjectService) Update(customerID uint, projectID uint, input ProjectInput) (models.ITProject, error) {
	project, err := service.ownedProject(customerID, projectID)
	if err != nil {
		return models.ITProject{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.ITProject{}, ErrProjectTitleRequired
	}

	if err := service.projects.UpdateByID(project.ID, map[string]any{
		"title":          title,
		"description":    strings.TrimSpace(input.Description),
		"category_id":    input.CategoryID,
		"subcategory_id": input.SubcategoryID,
		"budget":         input.Budget,
		"deadline":       input.Deadline,
	}); err != nil {
		return models.ITProject{}, fmt.Errorf("update project: %w", err)
	}
	return service.projects.FindByID(project.ID)
}

func (service *ProjectService) SetStatus(customerID uint, projectID uint, status string) (models.ITProject, error) {
	project, err := service.ownedProject(customerID, projectID)
	if err != nil {
		return models.ITProject{}, err
	}
	if !ValidStatusTransition(project.Status, status) {
		return models.ITProject{}, ErrProjectStatusInvalid
	}
	if err := service.projects.UpdateByID(project.ID, map[string]any{"status": status}); err != nil {
		return models.ITProject{}, fmt.Errorf("update project status: %w", err)
	}
	project.Status = status
	return project, nil
}

func (service *ProjectService) Delete(customerID uint, projectID uint) error {
	project, err := service.ownedProject(customerID, projectID)
	if err != nil {
		return err
	}
	return service.projects.Delete(project.ID)
}

func (service *ProjectService) AddOffer(customerID uint, projectID uint, input OfferInput) (models.ProjectOffer, error) {
	project, err := service.ownedProject(customerID, projectID)
	if err != nil {
		return models.ProjectOffer{}, err
	}

	headline := strings.TrimSpace(input.Headline)
	if headline == "" {
		return models.ProjectOffer{}, ErrOfferHeadlineRequired
	}
	if input.ExpertCount < 1 {
		return models.ProjectOffer{}, ErrOfferExpertCountInvalid
	}

	offer := models.ProjectOffer{
		ProjectID:      project.ID,
		PlatformID:     input.PlatformID,
		Headline:       headline,
		Description:    strings.TrimSpace(input.Description),
		RequiredSkills: normalizeNames(input.RequiredSkills),
		ExpertCount:    input.ExpertCount,
	}
	if err := service.projects.CreateOffer(&offer); err != nil {
		return models.ProjectOffer{}, fmt.Errorf("create offer: %w", err)
	}
	return offer, nil
}

func (service *ProjectService) OffersFor(projectID uint) ([]models.ProjectOffer, error) {
	return service.projects.ListOffers(projectID)
}

func (service *ProjectService) ListForCustomer(customerID uint) ([]models.ITProject, error) {
	return service.projects.ListByCustomer(customerID)
}

func (service *ProjectService) ListPublished(filter ProjectFilter) ([]models.ITProject, error) {
	return service.projects.ListPublished(filter)
}

func (service *ProjectService) FindPublished(projectID uint) (models.ITProject, error) {
	project, err := service.projects.FindByID(projectID)
	if err != nil {
		return models.ITProject{}, err
	}
	if project.Status != models.ProjectStatusPublished {
		return models.ITProject{}, ErrProjectNotPublished
	}
	return project, nil
}

func (service *ProjectService) ownedProject(customerID uint, projectID uint) (models.ITProject, error) {
	project, err := service.projects.FindByID(projectID)
	if err != nil {
		return models.ITProject{}, err
	}
	if project.CustomerID != customerID {
		return models.ITProject{}, ErrProjectNotOwned
	}
	return project, nil
}

func ValidStatusTransition(current string, next string) bool {
	switch current {
	case models.ProjectStatusDraft:
		return next == models.ProjectStatusPublished || next == models.ProjectStatusClosed
	case models.ProjectStatusPublished:
		return next == models.ProjectStatusClosed
	default:
		return false
	}
}
