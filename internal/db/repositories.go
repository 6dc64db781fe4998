package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Profiles *ProfileRepository
	Projects *ProjectRepository
	Catalog  *CatalogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Profiles: NewProfileRepository(database),
		Projects: NewProjectRepository(database),
		Catalog:  NewCatalogRepository(database),
	}
}
