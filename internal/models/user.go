package models

import "time"

// User is the identity row created at registration. Name, country and role
// arrive later through onboarding and profile editing.
type User struct {
	ID              uint   `gorm:"primaryKey"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null;default:''"`
	GoogleID        string `gorm:"index;not null;default:''"`
	FirstName       string `gorm:"not null;default:''"`
	LastName        string `gorm:"not null;default:''"`
	CountryID       *uint
	RoleID          *uint
	LinkedinProfile string `gorm:"not null;default:''"`
	OtherLink       string `gorm:"not null;default:''"`
	AvatarURL       string `gorm:"not null;default:''"`
	CVURL           string `gorm:"not null;default:''"`
	MagicLinkNonce  string `gorm:"not null;default:''"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type UserRole struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

const (
	RoleNameExpert   = "expert"
	RoleNameCustomer = "customer"
	RoleNameAdmin    = "admin"
)

type Country struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Code string `gorm:"uniqueIndex;not null" json:"code"`
}
