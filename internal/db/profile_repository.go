package db

import (
	"errors"

	"github.com/wizardsmarket/wizards/internal/models"
	"github.com/wizardsmarket/wizards/internal/services"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

// LoadSnapshot performs the combined read the evaluator works on: identity,
// role name and the role profile with children preloaded. Missing role
// profiles come back as nil, read failures as errors.
func (repo *ProfileRepository) LoadSnapshot(userID uint) (services.ProfileSnapshot, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return services.ProfileSnapshot{}, err
	}

	snapshot := services.ProfileSnapshot{User: user}
	if user.RoleID == nil {
		return snapshot, nil
	}

	var role models.UserRole
	if err := repo.database.First(&role, *user.RoleID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ProfileSnapshot{}, err
		}
		return snapshot, nil
	}
	snapshot.RoleName = role.Name

	switch services.ParseRole(role.Name) {
	case services.RoleExpert:
		var expert models.ExpertProfile
		err := repo.database.
			Preload("Skills").
			Preload("Tools").
			Preload("Expertise").
			Where("user_id = ?", userID).
			First(&expert).Error
		if err == nil {
			snapshot.Expert = &expert
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ProfileSnapshot{}, err
		}
	case services.RoleCustomer:
		var customer models.CustomerProfile
		err := repo.database.
			Preload("Solutions").
			Where("user_id = ?", userID).
			First(&customer).Error
		if err == nil {
			snapshot.Customer = &customer
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ProfileSnapshot{}, err
		}
	}

	return snapshot, nil
}

func (repo *ProfileRepository) UpdateIdentity(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *ProfileRepository) UpsertExpertProfile(userID uint, bio string, professionID *uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.ExpertProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.ExpertProfile{
				UserID:       userID,
				Bio:          bio,
				ProfessionID: professionID,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.ExpertProfile{}).Where("user_id = ?", userID).Updates(map[string]any{
			"bio":           bio,
			"profession_id": professionID,
		}).Error
	})
}

func (repo *ProfileRepository) ReplaceExpertSkills(userID uint, names []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ExpertSkill{}).Error; err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.Create(&models.ExpertSkill{UserID: userID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ProfileRepository) ReplaceExpertTools(userID uint, names []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ExpertTool{}).Error; err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.Create(&models.ExpertTool{UserID: userID, Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ProfileRepository) ReplaceExpertExpertise(userID uint, entries []models.ExpertExpertise) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ExpertExpertise{}).Error; err != nil {
			return err
		}
		for index := range entries {
			entry := entries[index]
			entry.ID = 0
			entry.UserID = userID
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ProfileRepository) UpsertCustomerProfile(userID uint, companyName string, jobTitle string, description string, acceptedTerms bool, acceptedPrivacy bool) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.CustomerProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.CustomerProfile{
				UserID:          userID,
				CompanyName:     companyName,
				JobTitle:        jobTitle,
				Description:     description,
				AcceptedTerms:   acceptedTerms,
				AcceptedPrivacy: acceptedPrivacy,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.CustomerProfile{}).Where("user_id = ?", userID).Updates(map[string]any{
			"company_name":     companyName,
			"job_title":        jobTitle,
			"description":      description,
			"accepted_terms":   acceptedTerms,
			"accepted_privacy": acceptedPrivacy,
		}).Error
	})
}

func (repo *ProfileRepository) ReplaceCustomerSolutions(userID uint, solutionIDs []uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CustomerSolution{}).Error; err != nil {
			return err
		}
		for _, solutionID := range solutionIDs {
			if err := tx.Create(&models.CustomerSolution{UserID: userID, SolutionID: solutionID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ProfileRepository) UpsertAvatar(userID uint, url string) error {
	return repo.upsertMedia(userID, models.MediaKindAvatar, url)
}

func (repo *ProfileRepository) upsertMedia(userID uint, kind string, url string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.UserMedia
		err := tx.Where("user_id = ? AND kind = ?", userID, kind).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.UserMedia{UserID: userID, Kind: kind, URL: url}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Update("url", url).Error
	})
}

func (repo *ProfileRepository) UpsertCV(userID uint, name string, url string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.UserDocument
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.UserDocument{UserID: userID, Name: name, URL: url}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&existing).Update("url", url).Error
	})
}

// ListExpertSnapshots lists expert users matching the directory filter, each
// with its role profile preloaded so completeness can be evaluated in memory.
func (repo *ProfileRepository) ListExpertSnapshots(filter services.ExpertFilter) ([]services.ProfileSnapshot, error) {
	var expertRole models.UserRole
	if err := repo.database.Where("name = ?", models.RoleNameExpert).First(&expertRole).Error; err != nil {
		return nil, err
	}

	query := repo.database.Model(&models.User{}).Where("users.role_id = ?", expertRole.ID)
	if filter.CountryID != nil {
		query = query.Where("users.country_id = ?", *filter.CountryID)
	}
	if trimmed := normalizedQuery(filter.Query); trimmed != "" {
		pattern := "%" + trimmed + "%"
		query = query.
			Joins("LEFT JOIN expert_profiles ON expert_profiles.user_id = users.id").
			Where("lower(users.first_name) LIKE ? OR lower(users.last_name) LIKE ? OR lower(expert_profiles.bio) LIKE ?", pattern, pattern, pattern)
	}
	if skill := normalizedQuery(filter.Skill); skill != "" {
		query = query.Where("EXISTS (SELECT 1 FROM expert_skills WHERE expert_skills.user_id = users.id AND lower(expert_skills.name) = ?)", skill)
	}
	if filter.PlatformID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM expert_expertises WHERE expert_expertises.user_id = users.id AND expert_expertises.platform_id = ?)", *filter.PlatformID)
	}

	users := make([]models.User, 0)
	if err := query.Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}

	snapshots := make([]services.ProfileSnapshot, 0, len(users))
	for _, user := range users {
		snapshot := services.ProfileSnapshot{User: user, RoleName: models.RoleNameExpert}

		var expert models.ExpertProfile
		err := repo.database.
			Preload("Skills").
			Preload("Tools").
			Preload("Expertise").
			Where("user_id = ?", user.ID).
			First(&expert).Error
		if err == nil {
			snapshot.Expert = &expert
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
