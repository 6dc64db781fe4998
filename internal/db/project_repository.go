package db

import (
	"github.com/wizardsmarket/wizards/internal/models"
	"github.com/wizardsmarket/wizards/internal/services"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	database *gorm.DB
}

func NewProjectRepository(database *gorm.DB) *ProjectRepository {
	return &ProjectRepository{database: database}
}

func (repo *ProjectRepository) Create(project *models.ITProject) error {
	return repo.database.Create(project).Error
}

func (repo *ProjectRepository) FindByID(projectID uint) (models.ITProject, error) {
	var project models.ITProject
	if err := repo.database.Preload("Offers").First(&project, projectID).Error; err != nil {
		return models.ITProject{}, err
	}
	return project, nil
}

func (repo *ProjectRepository) UpdateByID(projectID uint, updates map[string]any) error {
	return repo.database.Model(&models.ITProject{}).Where("id = ?", projectID).Updates(updates).Error
}

func (repo *ProjectRepository) Delete(projectID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectOffer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ITProject{}, projectID).Error
	})
}

func (repo *ProjectRepository) ListByCustomer(customerID uint) ([]models.ITProject, error) {
	projects := make([]models.ITProject, 0)
	if err := repo.database.
		Preload("Offers").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (repo *ProjectRepository) ListPublished(filter services.ProjectFilter) ([]models.ITProject, error) {
	query := repo.database.
		Preload("Offers").
		Where("status = ?", models.ProjectStatusPublished)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if trimmed := normalizedQuery(filter.Query); trimmed != "" {
		pattern := "%" + trimmed + "%"
		query = query.Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern)
	}

	projects := make([]models.ITProject, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (repo *ProjectRepository) CreateOffer(offer *models.ProjectOffer) error {
	return repo.database.Create(offer).Error
}

func (repo *ProjectRepository) ListOffers(projectID uint) ([]models.ProjectOffer, error) {
	offers := make([]models.ProjectOffer, 0)
	if err := repo.database.Where("project_id = ?", projectID).Order("id").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
