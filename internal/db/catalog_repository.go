package db

import (
	"strings"

	"github.com/wizardsmarket/wizards/internal/models"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	database *gorm.DB
}

func NewCatalogRepository(database *gorm.DB) *CatalogRepository {
	return &CatalogRepository{database: database}
}

func (repo *CatalogRepository) RoleByName(name string) (models.UserRole, error) {
	var role models.UserRole
	if err := repo.database.Where("name = ?", strings.ToLower(strings.TrimSpace(name))).First(&role).Error; err != nil {
		return models.UserRole{}, err
	}
	return role, nil
}

func (repo *CatalogRepository) RoleNameByID(roleID uint) (string, error) {
	var role models.UserRole
	if err := repo.database.First(&role, roleID).Error; err != nil {
		return "", err
	}
	return role.Name, nil
}

func (repo *CatalogRepository) ListRoles() ([]models.UserRole, error) {
	roles := make([]models.UserRole, 0)
	if err := repo.database.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (repo *CatalogRepository) ListCountries() ([]models.Country, error) {
	countries := make([]models.Country, 0)
	if err := repo.database.Order("name").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (repo *CatalogRepository) ListProfessions() ([]models.Profession, error) {
	professions := make([]models.Profession, 0)
	if err := repo.database.Order("name").Find(&professions).Error; err != nil {
		return nil, err
	}
	return professions, nil
}

func (repo *CatalogRepository) ListPlatforms() ([]models.Platform, error) {
	platforms := make([]models.Platform, 0)
	if err := repo.database.Order("name").Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}

func (repo *CatalogRepository) ListSolutions() ([]models.Solution, error) {
	solutions := make([]models.Solution, 0)
	if err := repo.database.Order("name").Find(&solutions).Error; err != nil {
		return nil, err
	}
	return solutions, nil
}

func (repo *CatalogRepository) ListCategories() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := repo.database.Preload("Subcategories").Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func normalizedQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
