package db

import (
	"path/filepath"
	"testing"

	"github.com/wizardsmarket/wizards/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "wizards-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func seededRoleID(t *testing.T, database *gorm.DB, name string) uint {
	t.Helper()

	role, err := NewCatalogRepository(database).RoleByName(name)
	if err != nil {
		t.Fatalf("seeded role %q missing: %v", name, err)
	}
	return role.ID
}

func createTestUser(t *testing.T, database *gorm.DB, email string, roleName string) models.User {
	t.Helper()

	user := models.User{Email: email, FirstName: "Test", LastName: "User"}
	if roleName != "" {
		roleID := seededRoleID(t, database, roleName)
		user.RoleID = &roleID
	}
	if err := NewUserRepository(database).Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
